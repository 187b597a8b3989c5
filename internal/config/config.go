// Package config loads environment-backed defaults. CLI flags take
// precedence; the env names are the legacy interface and stay supported as
// the fallback.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	URL      string `envconfig:"TRICOUNT_URL"`
	Username string `envconfig:"USER_NAME"`
	LogLevel string `envconfig:"LOGLEVEL" default:"info"`

	Headless     bool          `envconfig:"HEADLESS" default:"true"`
	HumanTyping  bool          `envconfig:"HUMAN_TYPING" default:"false"`
	ProbeTimeout time.Duration `envconfig:"PROBE_TIMEOUT" default:"5s"`
	StepBudget   int           `envconfig:"STEP_BUDGET" default:"10"`
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("read config from env vars: %w", err)
	}
	return &conf, nil
}
