package taxidb

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
	"time"
)

type Config struct {
	ZoneLookupURL string `yaml:"zone_lookup_url"`

	// TripURLPattern is a fmt pattern with a year verb and a zero-padded
	// month verb, e.g. ".../yellow_tripdata_%d-%02d.parquet". Local paths
	// work as well as https URLs.
	TripURLPattern string `yaml:"trip_url_pattern"`

	// The first month loaded. Later months follow on from it.
	ReferenceYear  int `yaml:"reference_year"`
	ReferenceMonth int `yaml:"reference_month"`

	FirstMonthCap int `yaml:"first_month_cap"`
	NextMonthCap  int `yaml:"next_month_cap"`

	MemoryLimit     string `yaml:"memory_limit"`
	DownloadTimeout int    `yaml:"download_timeout_seconds"`
}

func DefaultConfig() *Config {
	return &Config{
		ZoneLookupURL:   "https://d37ci6vzurychx.cloudfront.net/misc/taxi+_zone_lookup.csv",
		TripURLPattern:  "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_%d-%02d.parquet",
		ReferenceYear:   2024,
		ReferenceMonth:  1,
		FirstMonthCap:   100000,
		NextMonthCap:    50000,
		MemoryLimit:     "2GB",
		DownloadTimeout: 30,
	}
}

// LoadConfig reads a YAML file of overrides on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) check() error {
	if c.ReferenceMonth < 1 || c.ReferenceMonth > 12 {
		return fmt.Errorf("reference_month must be in [1, 12], got %d", c.ReferenceMonth)
	}
	if c.FirstMonthCap < 1 || c.NextMonthCap < 1 {
		return errors.New("row caps must be positive")
	}
	if strings.Count(c.TripURLPattern, "%") != 2 {
		return fmt.Errorf("trip_url_pattern needs a year verb and a month verb, got %q", c.TripURLPattern)
	}
	return nil
}

func (c *Config) downloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeout) * time.Second
}
