package shinies

import (
	"time"

	"shiny-tracker/models/entities"
	"shiny-tracker/utils/databases"
)

type Repository interface {
	FetchAll() ([]entities.ShinyRecord, error)
	FetchBySource(source string) ([]entities.ShinyRecord, error)
	ReplaceSource(source string, records []entities.ShinyRecord) error
	LastRefresh(source string) (time.Time, error)
	Count() int64
	CountBySource(source string) int64
}

type Impl struct {
	db databases.SqlConnection
}
