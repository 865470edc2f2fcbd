package constants

const (
	InternalName = "shiny-tracker"
	ExternalName = "Shiny Watchdog"
	Version      = "1.0.0"
)
