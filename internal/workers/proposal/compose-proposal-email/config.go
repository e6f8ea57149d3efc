package composeproposalemail

import (
	"fmt"
	"time"

	"proposal-workers/internal/export/mailcompose"
)

type Config struct {
	Enabled       bool               `mapstructure:"enabled"`
	MaxJobsActive int                `mapstructure:"max_jobs_active"`
	Timeout       time.Duration      `mapstructure:"timeout"`
	Sender        mailcompose.Sender `mapstructure:"sender"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 10,
		Timeout:       10 * time.Second,
		Sender:        mailcompose.DefaultSender,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.Sender.Address == "" {
		return fmt.Errorf("sender address is required")
	}
	return nil
}
