package tracker

import (
	"time"

	"shiny-tracker/pkg/observer"
	"shiny-tracker/repositories/shinies"
	"shiny-tracker/services/sources"
)

const checkTimeout = 1 * time.Minute

type Service interface {
	CheckSources()
	RegisterObserver(o observer.Observer)
}

type Impl struct {
	sources   []sources.Source
	shinyRepo shinies.Repository
	observers map[observer.Observer]struct{}
}
