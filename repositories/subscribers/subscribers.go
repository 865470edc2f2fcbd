package subscribers

import (
	"errors"
	"fmt"
	"strings"

	"shiny-tracker/models/entities"
	"shiny-tracker/utils/databases"

	"gorm.io/gorm"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) FetchAll() ([]entities.Subscriber, error) {
	var fetched []entities.Subscriber
	result := repo.db.GetDB().Find(&fetched)

	return fetched, result.Error
}

func (repo *Impl) Fetch(chatID int64) (entities.Subscriber, error) {
	var subscriber entities.Subscriber
	result := repo.db.GetDB().Where("chat_id = ?", chatID).First(&subscriber)

	return subscriber, result.Error
}

// SaveOrUpdate registers a chat once. A chat already registered keeps its row
// untouched, so muted sources survive repeated subscribe commands.
func (repo *Impl) SaveOrUpdate(subscriber entities.Subscriber) error {
	var existing entities.Subscriber

	result := repo.db.GetDB().Where("chat_id = ?", subscriber.ChatID).First(&existing)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := repo.db.GetDB().Create(&subscriber).Error; err != nil {
				return fmt.Errorf("failed to create subscriber: %w", err)
			}
		} else {
			return fmt.Errorf("failed to check subscriber existence: %w", result.Error)
		}
	}

	return nil
}

func (repo *Impl) Delete(chatID int64) error {
	result := repo.db.GetDB().Delete(&entities.Subscriber{}, chatID)
	return result.Error
}

func (repo *Impl) SetDisabledSources(chatID int64, sources []string) error {
	result := repo.db.GetDB().
		Model(&entities.Subscriber{}).
		Where("chat_id = ?", chatID).
		Update("disabled_sources", strings.Join(sources, ","))

	return result.Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.Subscriber{}).Count(count)

	return *count
}
