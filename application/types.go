package application

import (
	"shiny-tracker/services/health"
	"shiny-tracker/services/news"
	"shiny-tracker/services/pokedex"
	"shiny-tracker/services/telegram"
	"shiny-tracker/services/tracker"
	databases "shiny-tracker/utils/databases"
	"shiny-tracker/utils/insights"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run()
	Shutdown()
}

type Impl struct {
	scheduler       gocron.Scheduler
	healthService   health.Service
	pokedexService  pokedex.Service
	trackerService  tracker.Service
	newsService     news.Service
	telegramService telegram.Service
	db              databases.SqlConnection
	probes          *insights.Probes
}
