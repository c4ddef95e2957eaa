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

const (
	defaultAPIAddr      = "127.0.0.1:3000"
	defaultQueryTimeout = 30 * time.Second
	defaultLoadTimeout  = 2 * time.Minute
)

// appConfig is the daemon's runtime configuration.
type appConfig struct {
	APIBaseURL           string        `mapstructure:"api-base-url"`
	CollectionPath       string        `mapstructure:"collection-path"`
	PageSize             int           `mapstructure:"page-size"`
	RequestTimeout       time.Duration `mapstructure:"request-timeout"`
	MaxConcurrentFetches int           `mapstructure:"max-concurrent-fetches"`
	LogPath              string        `mapstructure:"log-path"`
	DBPath               string        `mapstructure:"db-path"`
	APIEnabled           bool          `mapstructure:"api-enabled"`
	APIAddr              string        `mapstructure:"api-addr"`
	RefreshInterval      time.Duration `mapstructure:"refresh-interval"`
	LoadTimeout          time.Duration `mapstructure:"load-timeout"`
	QueryTimeout         time.Duration `mapstructure:"query-timeout"`
	ExportPath           string        `mapstructure:"export-path"`
	ConfigPath           string        `mapstructure:"-"`
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	defaultDBPath := filepath.Join(home, ".local", "share", "bestiary", "catalog.duckdb")

	v := viper.New()
	v.SetEnvPrefix("BESTIARY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-base-url", model.DefaultAPIBaseURL)
	v.SetDefault("collection-path", model.DefaultCollectionPath)
	v.SetDefault("page-size", model.DefaultPageSize)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("max-concurrent-fetches", 0)
	v.SetDefault("log-path", logging.DefaultPath("bestiaryd"))
	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("api-enabled", true)
	v.SetDefault("api-addr", defaultAPIAddr)
	v.SetDefault("refresh-interval", time.Duration(0))
	v.SetDefault("load-timeout", defaultLoadTimeout)
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("export-path", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "bestiary", "config.yml"))
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
	if _, err := os.Stat(v.ConfigFileUsed()); err == nil {
		cfg.ConfigPath = v.ConfigFileUsed()
	}

	if cfg.PageSize <= 0 {
		return cfg, fmt.Errorf("invalid page-size: %d", cfg.PageSize)
	}
	if u, err := url.Parse(cfg.APIBaseURL); err != nil || !u.IsAbs() {
		return cfg, fmt.Errorf("invalid api-base-url: %q", cfg.APIBaseURL)
	}
	if cfg.RefreshInterval < 0 {
		return cfg, fmt.Errorf("invalid refresh-interval: %s", cfg.RefreshInterval)
	}
	if cfg.LoadTimeout < 0 {
		return cfg, fmt.Errorf("invalid load-timeout: %s", cfg.LoadTimeout)
	}

	cfg.DBPath = expandHome(home, cfg.DBPath)
	cfg.LogPath = expandHome(home, cfg.LogPath)
	cfg.ExportPath = expandHome(home, cfg.ExportPath)

	return cfg, nil
}

func expandHome(home, path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
