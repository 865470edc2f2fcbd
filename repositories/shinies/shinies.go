package shinies

import (
	"fmt"
	"time"

	"shiny-tracker/models/entities"
	"shiny-tracker/utils/databases"

	"gorm.io/gorm"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) FetchAll() ([]entities.ShinyRecord, error) {
	var records []entities.ShinyRecord
	result := repo.db.GetDB().Order("source").Order("dex_id").Find(&records)

	return records, result.Error
}

func (repo *Impl) FetchBySource(source string) ([]entities.ShinyRecord, error) {
	var records []entities.ShinyRecord
	result := repo.db.GetDB().Where("source = ?", source).Order("dex_id").Find(&records)

	return records, result.Error
}

// ReplaceSource swaps every record of one source inside a single transaction,
// so a failed write leaves the previous snapshot in place. FirstSeen survives
// the swap for records already known; records are normalized in place.
func (repo *Impl) ReplaceSource(source string, records []entities.ShinyRecord) error {
	return repo.db.GetDB().Transaction(func(tx *gorm.DB) error {
		var previous []entities.ShinyRecord
		if err := tx.Where("source = ?", source).Find(&previous).Error; err != nil {
			return fmt.Errorf("failed to read current records: %w", err)
		}

		firstSeen := make(map[int]time.Time, len(previous))
		for _, record := range previous {
			firstSeen[record.DexID] = record.FirstSeen
		}

		if err := tx.Where("source = ?", source).Delete(&entities.ShinyRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear records: %w", err)
		}

		now := time.Now().UTC()
		for index := range records {
			records[index].Source = source
			if seen, known := firstSeen[records[index].DexID]; known {
				records[index].FirstSeen = seen
			} else if records[index].FirstSeen.IsZero() {
				records[index].FirstSeen = now
			}
		}

		if len(records) == 0 {
			return nil
		}

		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to insert records: %w", err)
		}

		return nil
	})
}

func (repo *Impl) LastRefresh(source string) (time.Time, error) {
	var record entities.ShinyRecord
	result := repo.db.GetDB().Where("source = ?", source).Order("updated_at desc").First(&record)
	if result.Error != nil {
		return time.Time{}, result.Error
	}

	return record.UpdatedAt, nil
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.ShinyRecord{}).Count(count)

	return *count
}

func (repo *Impl) CountBySource(source string) int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.ShinyRecord{}).Where("source = ?", source).Count(count)

	return *count
}
