package feedsources

import (
	"shiny-tracker/models/entities"
	"shiny-tracker/utils/databases"
)

type Repository interface {
	FetchAll() ([]entities.FeedSource, error)
	Create(feedSource entities.FeedSource) error
	SaveCursor(feedSource entities.FeedSource) error
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}
