package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the run configuration. Endpoint locations and timeouts come
// from an optional YAML file so tests can point the adapters at fakes;
// credentials and the database URL come from the environment only.
type Config struct {
	Providers struct {
		FinnhubBaseURL string `yaml:"finnhub_base_url"`
		FMPBaseURL     string `yaml:"fmp_base_url"`
		YahooBaseURL   string `yaml:"yahoo_base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"providers"`
	Seed struct {
		ConstituentsURL string `yaml:"constituents_url"`
	} `yaml:"seed"`

	FinnhubAPIKey string `yaml:"-"`
	FMPAPIKey     string `yaml:"-"`
	DatabaseURL   string `yaml:"-"`
}

// Load reads the optional YAML config at path (empty path means defaults
// only) and fills secrets from the environment. Absent API keys are a
// supported configuration; the corresponding provider degrades to null
// fields.
func Load(path string) (*Config, error) {
	c := defaults()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	c.FinnhubAPIKey = os.Getenv("FINNHUB_API_KEY")
	c.FMPAPIKey = os.Getenv("FMP_API_KEY")
	c.DatabaseURL = os.Getenv("DATABASE_URL")

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return c, nil
}

func defaults() *Config {
	c := &Config{}
	c.Providers.FinnhubBaseURL = "https://finnhub.io/api/v1"
	c.Providers.FMPBaseURL = "https://financialmodelingprep.com/api/v3"
	c.Providers.YahooBaseURL = "https://query1.finance.yahoo.com"
	c.Providers.TimeoutSeconds = 10
	c.Seed.ConstituentsURL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"
	return c
}

// Validate checks the configuration for values that would break a run.
func (c *Config) Validate() error {
	if c.Providers.TimeoutSeconds <= 0 {
		return fmt.Errorf("providers.timeout_seconds must be positive, got %d", c.Providers.TimeoutSeconds)
	}
	if c.Providers.FinnhubBaseURL == "" || c.Providers.FMPBaseURL == "" || c.Providers.YahooBaseURL == "" {
		return fmt.Errorf("provider base URLs cannot be empty")
	}
	if c.Seed.ConstituentsURL == "" {
		return fmt.Errorf("seed.constituents_url cannot be empty")
	}
	return nil
}

// Timeout returns the per-call provider timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Providers.TimeoutSeconds) * time.Second
}
