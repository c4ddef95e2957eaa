package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/bestiary/internal/logging"
	"github.com/tinytelemetry/bestiary/internal/model"
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	APIBaseURL           string        `mapstructure:"api-base-url"`
	CollectionPath       string        `mapstructure:"collection-path"`
	PageSize             int           `mapstructure:"page-size"`
	RequestTimeout       time.Duration `mapstructure:"request-timeout"`
	MaxConcurrentFetches int           `mapstructure:"max-concurrent-fetches"`
	LogPath              string        `mapstructure:"log-path"`
	Skin                 string        `mapstructure:"skin"`
	ShowFilterPanel      bool          `mapstructure:"show-filter-panel"`
	ConfigDir            string        `mapstructure:"-"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}
	configDir := filepath.Join(home, ".config", "bestiary")

	v := viper.New()
	v.SetEnvPrefix("BESTIARY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-base-url", model.DefaultAPIBaseURL)
	v.SetDefault("collection-path", model.DefaultCollectionPath)
	v.SetDefault("page-size", model.DefaultPageSize)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("max-concurrent-fetches", 0)
	v.SetDefault("log-path", logging.DefaultPath("bestiary"))
	v.SetDefault("skin", model.DefaultSkin)
	v.SetDefault("show-filter-panel", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(configDir, "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigDir = configDir

	if cfg.PageSize <= 0 {
		return cfg, fmt.Errorf("invalid page-size: %d", cfg.PageSize)
	}
	if u, err := url.Parse(cfg.APIBaseURL); err != nil || !u.IsAbs() {
		return cfg, fmt.Errorf("invalid api-base-url: %q", cfg.APIBaseURL)
	}
	if strings.HasPrefix(cfg.LogPath, "~/") {
		cfg.LogPath = filepath.Join(home, cfg.LogPath[2:])
	}

	return cfg, nil
}
