package news

import (
	"time"

	"shiny-tracker/pkg/observer"
	"shiny-tracker/repositories/feedsources"

	"github.com/mmcdole/gofeed"
)

type Service interface {
	RegisterObserver(o observer.Observer)
	FetchNews() error
}

type Impl struct {
	feedParser     *gofeed.Parser
	timeout        time.Duration
	feedSourceRepo feedsources.Repository
	observers      map[observer.Observer]struct{}
}
