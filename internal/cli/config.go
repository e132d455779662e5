package cli

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration. Environment variables seed the defaults
// and command-line flags override them.
type Config struct {
	Output         string        `env:"LIFECOUNTER_OUTPUT" envDefault:"text"`
	Verbose        bool          `env:"LIFECOUNTER_VERBOSE"`
	FeedbackWindow time.Duration `env:"LIFECOUNTER_FEEDBACK_WINDOW" envDefault:"5s"`
	FormatsFile    string        `env:"LIFECOUNTER_FORMATS_FILE"`
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Validate checks flag and environment values that env tags cannot express
func (c *Config) Validate() error {
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("invalid output format %q: must be %s or %s", c.Output, OutputText, OutputJSON)
	}
	if c.FeedbackWindow < 0 {
		return fmt.Errorf("feedback window must not be negative, got %s", c.FeedbackWindow)
	}
	return nil
}
