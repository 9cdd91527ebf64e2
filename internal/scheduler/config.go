package scheduler

import (
	"time"
)

// Config controls the refresh interval and how many fiscal years are kept warm.
type Config struct {
	RunInterval time.Duration
	// LookaheadYears is the number of fiscal years after the current one refreshed
	// on each run.
	LookaheadYears int
	JobTimeout     time.Duration
	LockTTL        time.Duration
	EnabledJobs    []string
}

func DefaultConfig() Config {
	return Config{
		RunInterval:    10 * time.Minute,
		LookaheadYears: 1,
		JobTimeout:     30 * time.Second,
		LockTTL:        time.Minute,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.LookaheadYears < 0 {
		c.LookaheadYears = 0
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	if c.LockTTL <= 0 {
		c.LockTTL = defaults.LockTTL
	}
	return c
}
