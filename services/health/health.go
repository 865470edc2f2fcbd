package health

import (
	"time"

	"shiny-tracker/models/constants"

	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler) (*Impl, error) {
	service := Impl{startedAt: time.Now()}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.HealthCronTab), true),
		gocron.NewTask(func() { service.echo() }),
		gocron.WithName("Check app running"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) Uptime() time.Duration {
	return time.Since(service.startedAt)
}

func (service *Impl) echo() {
	log.Info().Msgf("Application is running since %s", humanize.Time(service.startedAt))
}
