package module

import (
	"time"

	"assistant/internal/platform/config"
)

// Options controls the sweep worker
type Options struct {
	Interval time.Duration
}

// FromConfig reads with SCHEDULER_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("SCHEDULER_")
	return Options{
		Interval: c.MayDuration("INTERVAL", 5*time.Minute),
	}
}
