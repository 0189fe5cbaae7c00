// Package config loads daybook settings from a .daybook file and DAYBOOK_*
// environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/store"
)

const (
	// EnvConfigPath names an extra directory searched for the config file.
	EnvConfigPath = "DAYBOOK_CONFIG_PATH"

	defaultPath     = "~/.daybook"
	defaultCurrency = "USD"
)

// Config holds the resolved settings.
type Config struct {
	StorageDriver string
	Path          string
	Currency      string
	// Samples seeds collections that have never been saved with demo records.
	Samples bool

	// File is the config file that was read, empty when none was found.
	File string
}

var _ store.Config = (*Config)(nil)

func (c *Config) Driver() string {
	return c.StorageDriver
}

func (c *Config) BasePath() string {
	return c.Path
}

// Load resolves the configuration.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("driver", string(store.DriverDiskv))
	v.SetDefault("path", defaultPath)
	v.SetDefault("currency", defaultCurrency)
	v.SetDefault("samples", false)
	v.SetConfigName(".daybook") // .yaml is implicit
	v.SetEnvPrefix("DAYBOOK")
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := &Config{
		StorageDriver: v.GetString("driver"),
		Path:          v.GetString("path"),
		Currency:      v.GetString("currency"),
		Samples:       v.GetBool("samples"),
		File:          v.ConfigFileUsed(),
	}
	if _, err := store.ParseDriver(cfg.StorageDriver); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
