package observer

import (
	"shiny-tracker/pkg/changeset"

	"github.com/mmcdole/gofeed"
)

type EventType int

const (
	ShinyEvent EventType = 1
	NewsEvent  EventType = 2
)

type Event struct {
	E       EventType
	Source  string
	Summary changeset.Summary
	Feed    string
	Item    *gofeed.Item
}

func NewShinyEvent(source string, summary changeset.Summary) Event {
	return Event{E: ShinyEvent, Source: source, Summary: summary}
}

func NewNewsEvent(feed string, item *gofeed.Item) Event {
	return Event{E: NewsEvent, Feed: feed, Item: item}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	Register(Observer)
	Notify(Event)
}
