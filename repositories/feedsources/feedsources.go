package feedsources

import (
	"shiny-tracker/models/entities"
	"shiny-tracker/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) FetchAll() ([]entities.FeedSource, error) {
	var feedSources []entities.FeedSource
	response := repo.db.GetDB().Model(&entities.FeedSource{}).Find(&feedSources)
	return feedSources, response.Error
}

func (repo *Impl) Create(feedSource entities.FeedSource) error {
	return repo.db.GetDB().Create(&feedSource).Error
}

// SaveCursor advances the publication cursor of a feed, nothing else.
func (repo *Impl) SaveCursor(feedSource entities.FeedSource) error {
	return repo.db.GetDB().
		Model(&feedSource).
		Where("feed_type_id = ?", feedSource.FeedTypeID).
		Update("last_update", feedSource.LastUpdate).
		Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.FeedSource{}).Count(count)

	return *count
}
