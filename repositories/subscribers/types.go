package subscribers

import (
	"shiny-tracker/models/entities"
	"shiny-tracker/utils/databases"
)

type Repository interface {
	SaveOrUpdate(subscriber entities.Subscriber) error
	Delete(chatID int64) error
	Fetch(chatID int64) (entities.Subscriber, error)
	FetchAll() ([]entities.Subscriber, error)
	SetDisabledSources(chatID int64, sources []string) error
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}
