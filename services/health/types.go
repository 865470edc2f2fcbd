package health

import "time"

type Service interface {
	Uptime() time.Duration
}

type Impl struct {
	startedAt time.Time
}
