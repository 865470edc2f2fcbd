package entities

import (
	"strings"
	"time"
)

type Subscriber struct {
	ChatID          int64 `gorm:"primaryKey"`
	Name            string
	DisabledSources string
	CreatedAt       time.Time
}

// DisabledList splits the stored comma separated source names.
func (subscriber *Subscriber) DisabledList() []string {
	var disabled []string
	for _, name := range strings.Split(subscriber.DisabledSources, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			disabled = append(disabled, name)
		}
	}

	return disabled
}

func (subscriber *Subscriber) IsMuted(source string) bool {
	for _, name := range subscriber.DisabledList() {
		if name == source {
			return true
		}
	}

	return false
}
