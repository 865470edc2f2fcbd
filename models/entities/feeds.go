package entities

import "time"

type FeedSource struct {
	FeedTypeID string `gorm:"primaryKey"`
	Title      string
	URL        string
	LastUpdate time.Time `gorm:"not null; default:current_timestamp"`
}
