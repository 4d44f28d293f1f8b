package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type schedulerEnv struct {
	Interval time.Duration `env:"SCHEDULER_INTERVAL" envDefault:"5m"`
	Timezone string        `env:"SCHEDULER_TIMEZONE" envDefault:"Europe/Moscow"`
}

type scheduler struct {
	raw time.Duration
	loc *time.Location
}

func NewSchedulerConfig() (*scheduler, error) {
	var raw schedulerEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(raw.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduler timezone %q: %w", raw.Timezone, err)
	}

	return &scheduler{raw: raw.Interval, loc: loc}, nil
}

func (cfg *scheduler) Interval() time.Duration { return cfg.raw }
func (cfg *scheduler) Location() *time.Location { return cfg.loc }
