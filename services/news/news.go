package news

import (
	"context"
	"sort"
	"time"

	"shiny-tracker/models/constants"
	"shiny-tracker/models/entities"
	"shiny-tracker/pkg/observer"
	"shiny-tracker/repositories/feedsources"

	"github.com/go-co-op/gocron/v2"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(feedSourceRepo feedsources.Repository, scheduler gocron.Scheduler) (*Impl, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = viper.GetString(constants.UserAgent)
	service := &Impl{
		feedParser:     fp,
		timeout:        time.Duration(viper.GetInt(constants.RSSTimeout)) * time.Second,
		feedSourceRepo: feedSourceRepo,
	}
	service.observers = map[observer.Observer]struct{}{}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.NewsCronTab), true),
		gocron.NewTask(func() { service.FetchNews() }),
		gocron.WithName("Fetch news feeds"),
	)
	if errJob != nil {
		return nil, errJob
	}

	if service.feedSourceRepo.Count() == 0 {
		err := service.feedSourceRepo.Create(entities.FeedSource{
			FeedTypeID: "pokemon-go-hub",
			Title:      "Pokémon GO Hub",
			URL:        "https://pokemongohub.net/feed/",
			LastUpdate: time.Now().AddDate(0, 0, -5),
		})
		if err != nil {
			log.Error().Err(err).Msg("Error on save feed")
		}
	}

	return service, nil
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers[o] = struct{}{}
}

func (service *Impl) FetchNews() error {
	log.Info().Msgf("Checking news feeds...")

	feedSources, err := service.feedSourceRepo.FetchAll()
	if err != nil {
		return err
	}

	for _, feedSource := range feedSources {
		service.checkFeed(feedSource)
	}

	return nil
}

// checkFeed publishes every item newer than the stored cursor, oldest first.
// The cursor advances after each published item, so a failing cursor write
// republishes at most the items that follow it.
func (service *Impl) checkFeed(source entities.FeedSource) {
	log.Info().
		Str(constants.LogFeedURL, source.URL).
		Str(constants.LogFeedType, source.FeedTypeID).
		Msgf("Reading feed source...")

	feed, err := service.readFeed(source.URL)
	if err != nil {
		log.Error().
			Err(err).
			Str(constants.LogFeedType, source.FeedTypeID).
			Str(constants.LogFeedURL, source.URL).
			Msgf("Cannot parse URL, source ignored")
		return
	}

	publishedItems := 0
	lastUpdate := source.LastUpdate
	for _, feedItem := range feed.Items {
		if !feedItem.PublishedParsed.UTC().After(lastUpdate.UTC()) {
			continue
		}

		service.publishFeedItem(feedItem, source)

		if feedItem.PublishedParsed.UTC().After(source.LastUpdate.UTC()) {
			source.LastUpdate = feedItem.PublishedParsed.UTC()
		}
		if errSave := service.feedSourceRepo.SaveCursor(source); errSave != nil {
			log.Error().Err(errSave).
				Str(constants.LogFeedType, source.FeedTypeID).
				Str(constants.LogFeedURL, source.URL).
				Str(constants.LogFeedItemID, feedItem.GUID).
				Msgf("Impossible to update feed source, breaking loop; this feed might be published again next time")
			break
		}

		publishedItems++
	}

	log.Info().
		Str(constants.LogFeedType, source.FeedTypeID).
		Str(constants.LogFeedURL, source.URL).
		Int(constants.LogFeedNumber, publishedItems).
		Msgf("Feed(s) read and published")
}

func (service *Impl) readFeed(url string) (*gofeed.Feed, error) {
	ctx, cancel := context.WithTimeout(context.Background(), service.timeout)
	defer cancel()
	feed, err := service.feedParser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}

	// Items without a publication date cannot be ordered against the cursor.
	dated := make([]*gofeed.Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.PublishedParsed != nil {
			dated = append(dated, item)
		}
	}
	feed.Items = dated

	sort.SliceStable(feed.Items, func(i, j int) bool {
		return feed.Items[i].PublishedParsed.Before(*feed.Items[j].PublishedParsed)
	})

	return feed, nil
}

func (service *Impl) publishFeedItem(item *gofeed.Item, feedSource entities.FeedSource) {
	title := feedSource.Title
	if title == "" {
		title = feedSource.FeedTypeID
	}

	for o := range service.observers {
		o.OnNotify(observer.NewNewsEvent(title, item))
	}
}
