package config

import (
	"time"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	MigrationDirectory() string
	DSN() string
}

type Scheduler interface {
	// Interval between shippable-order re-checks. Zero disables the
	// in-process ticker; the endpoint stays available.
	Interval() time.Duration
	// Reference timezone for shipping-date comparisons.
	Location() *time.Location
}
