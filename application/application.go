package application

import (
	"shiny-tracker/models/constants"
	"shiny-tracker/models/entities"
	feedsourcesRepo "shiny-tracker/repositories/feedsources"
	shiniesRepo "shiny-tracker/repositories/shinies"
	subscribersRepo "shiny-tracker/repositories/subscribers"
	"shiny-tracker/services/health"
	"shiny-tracker/services/news"
	"shiny-tracker/services/pokedex"
	"shiny-tracker/services/sources"
	"shiny-tracker/services/telegram"

	"shiny-tracker/services/tracker"
	databases "shiny-tracker/utils/databases"
	"shiny-tracker/utils/insights"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New() (*Impl, error) {
	db := databases.New()
	if errDB := db.Run(); errDB != nil {
		return nil, errDB
	}

	errMigration := db.GetDB().AutoMigrate(&entities.ShinyRecord{}, &entities.Subscriber{}, &entities.FeedSource{})
	if errMigration != nil {
		return nil, errMigration
	}

	probes := insights.NewProbes(db.IsConnected)

	scheduler, errScheduler := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if errScheduler != nil {
		return nil, errScheduler
	}

	// Repositories
	shinyRepo := shiniesRepo.New(db)
	subscriberRepo := subscribersRepo.New(db)
	feedRepo := feedsourcesRepo.New(db)

	pokedexService, errPokedex := pokedex.New(scheduler)
	if errPokedex != nil {
		return nil, errPokedex
	}

	shinySources := []sources.Source{
		sources.NewPogoAPI(pokedexService),
		sources.NewGamePress(pokedexService),
	}

	trackerService, errTracker := tracker.New(scheduler, shinySources, shinyRepo)
	if errTracker != nil {
		return nil, errTracker
	}
	newsService, errNews := news.New(feedRepo, scheduler)
	if errNews != nil {
		return nil, errNews
	}

	telegramService, errTg := telegram.New(scheduler, viper.GetString(constants.TelegramBotToken), subscriberRepo, shinyRepo)
	if errTg != nil {
		return nil, errTg
	}

	healthService, errHealth := health.New(scheduler)
	if errHealth != nil {
		return nil, errHealth
	}

	trackerService.RegisterObserver(telegramService)
	newsService.RegisterObserver(telegramService)

	return &Impl{
		scheduler:       scheduler,
		probes:          probes,
		healthService:   healthService,
		pokedexService:  pokedexService,
		trackerService:  trackerService,
		newsService:     newsService,
		telegramService: telegramService,
		db:              db,
	}, nil
}

func (app *Impl) Run() {
	app.scheduler.Start()
	go app.telegramService.ListenAndDispatch()
	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	app.probes.ListenAndServe()
}

func (app *Impl) Shutdown() {
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}
