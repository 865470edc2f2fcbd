package tracker

import (
	"context"
	"time"

	"shiny-tracker/models/constants"
	"shiny-tracker/pkg/changeset"
	"shiny-tracker/pkg/observer"
	"shiny-tracker/repositories/shinies"
	"shiny-tracker/services/sources"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler,
	shinySources []sources.Source,
	shinyRepo shinies.Repository) (*Impl, error) {
	service := &Impl{
		sources:   shinySources,
		shinyRepo: shinyRepo,
		observers: map[observer.Observer]struct{}{},
	}

	interval := viper.GetInt(constants.PollIntervalMinutes)
	if interval < 1 {
		interval = 1
	}

	// A check slower than the interval must not pile up a second run.
	jobOptions := []gocron.JobOption{
		gocron.WithName("Check shiny sources"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if viper.GetBool(constants.Production) {
		jobOptions = append(jobOptions, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, errJob := scheduler.NewJob(
		gocron.DurationJob(time.Duration(interval)*time.Minute),
		gocron.NewTask(func() { service.CheckSources() }),
		jobOptions...,
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers[o] = struct{}{}
}

func (service *Impl) notify(e observer.Event) {
	for o := range service.observers {
		o.OnNotify(e)
	}
}

// CheckSources walks every source once. A failing source only skips its own
// tick, the remaining sources still refresh and notify.
func (service *Impl) CheckSources() {
	log.Info().Msg("Start checking shiny sources")
	for _, source := range service.sources {
		service.checkSource(source)
	}
	log.Info().Msg("End checking shiny sources")
}

func (service *Impl) checkSource(source sources.Source) {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	fresh, errFetch := source.Fetch(ctx)
	if errFetch != nil {
		log.Error().Err(errFetch).Str(constants.LogSource, source.Name()).Msg("Cannot fetch source, snapshot kept")
		return
	}

	stored, errStored := service.shinyRepo.FetchBySource(source.Name())
	if errStored != nil {
		log.Error().Err(errStored).Str(constants.LogSource, source.Name()).Msg("Cannot read stored snapshot, source skipped")
		return
	}

	summary := changeset.Compute(stored, fresh)

	if errReplace := service.shinyRepo.ReplaceSource(source.Name(), fresh); errReplace != nil {
		log.Error().Err(errReplace).Str(constants.LogSource, source.Name()).Msg("Cannot save snapshot, previous one kept")
		return
	}

	log.Info().
		Str(constants.LogSource, source.Name()).
		Int(constants.LogRecordCount, len(fresh)).
		Int("added", len(summary.Added)).
		Int("changed", len(summary.Changed)).
		Msg("Snapshot refreshed")

	if !summary.IsEmpty() {
		service.notify(observer.NewShinyEvent(source.Name(), summary))
	}
}
