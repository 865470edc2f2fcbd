package constants

import "github.com/rs/zerolog"

const (
	ConfigFileName = ".env"

	// TELEGRAM BOT
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// Chat ID notified about new subscribers and daily reports. 0 disables it.
	TelegramAdmin = "TELEGRAM_ADMIN"

	// Minutes between two shiny source checks.
	PollIntervalMinutes = "POLL_INTERVAL_MINUTES"

	// SQLITE_URL URL.
	SqliteURL = "SQLITE_URL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// Probe port.
	ProbePort = "PROBE_PORT"

	// Boolean; when true the first source check runs at startup instead of
	// waiting for the first interval.
	Production = "PRODUCTION"

	// User agent sent on outgoing HTTP calls.
	UserAgent = "USER_AGENT"

	// Timeout in seconds for news feed retrieval.
	RSSTimeout = "RSS_TIMEOUT"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	// Cron tab to news feeds.
	NewsCronTab = "NEWS_CRON_TAB"

	// Cron tab to pokedex name refresh.
	PokedexCronTab = "POKEDEX_CRON_TAB"

	// Cron tab to the daily admin report.
	AdminReportCronTab = "ADMIN_REPORT_CRON_TAB"

	defaultTelegramBotToken    = ""
	defaultTelegramAdmin       = 0
	defaultPollIntervalMinutes = 5
	defaultProbePort           = 9090
	defaultSqliteURL           = "shiny-tracker.db"
	defaultUserAgent           = InternalName + "/" + Version
	defaultRSSTimeout          = 30
	defaultHealthCrontab       = "* * * * *"
	defaultNewsCronTab         = "0 * * * *"
	defaultPokedexCronTab      = "0 6 * * *"
	defaultAdminReportCronTab  = "0 14 * * *"
	defaultLogLevel            = zerolog.InfoLevel
	defaultProduction          = false
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		TelegramBotToken:    defaultTelegramBotToken,
		TelegramAdmin:       defaultTelegramAdmin,
		PollIntervalMinutes: defaultPollIntervalMinutes,
		ProbePort:           defaultProbePort,
		SqliteURL:           defaultSqliteURL,
		UserAgent:           defaultUserAgent,
		RSSTimeout:          defaultRSSTimeout,
		LogLevel:            defaultLogLevel.String(),
		Production:          defaultProduction,
		HealthCronTab:       defaultHealthCrontab,
		NewsCronTab:         defaultNewsCronTab,
		PokedexCronTab:      defaultPokedexCronTab,
		AdminReportCronTab:  defaultAdminReportCronTab,
	}
}
