package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogSource        = "source"
	LogDexID         = "dexID"
	LogRecordCount   = "recordCount"
	LogFeedURL       = "feedURL"
	LogFeedType      = "feedType"
	LogFeedItemID    = "feedItemID"
	LogFeedNumber    = "feedNumber"
	LogLevelFallback = zerolog.InfoLevel
)
