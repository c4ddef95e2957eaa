package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tinytelemetry/bestiary/internal/logging"
	"github.com/tinytelemetry/bestiary/internal/pokeapi"
	"github.com/tinytelemetry/bestiary/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var baseURL string
	var pageSize int
	var hidePanel bool
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/bestiary/config.yml)")
	flag.StringVar(&baseURL, "api", "", "override the catalog API base URL")
	flag.IntVar(&pageSize, "limit", 0, "override how many creatures to load")
	flag.BoolVar(&hidePanel, "no-filter", false, "start with the filter panel hidden")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Bestiary - Creature Catalog\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if baseURL != "" {
		cfg.APIBaseURL = baseURL
	}
	if pageSize > 0 {
		cfg.PageSize = pageSize
	}
	if hidePanel {
		cfg.ShowFilterPanel = false
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	logger, cleanup := logging.New(logging.Config{Path: cfg.LogPath})
	defer cleanup()

	if err := tui.InitializeSkin(cfg.Skin, cfg.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load skin '%s': %v (using default)\n", cfg.Skin, err)
		logger.Warn("skin load failed", zap.String("skin", cfg.Skin), zap.Error(err))
	}

	client, err := pokeapi.NewClient(pokeapi.Config{
		BaseURL:        cfg.APIBaseURL,
		CollectionPath: cfg.CollectionPath,
		PageSize:       cfg.PageSize,
		Timeout:        cfg.RequestTimeout,
		MaxConcurrent:  cfg.MaxConcurrentFetches,
	})
	if err != nil {
		return fmt.Errorf("configuring catalog client: %w", err)
	}

	logger.Info("starting catalog",
		zap.String("version", version),
		zap.String("collection", client.CollectionURL()))

	keys := tui.DefaultKeyMap()
	catalogView := tui.NewCatalogView(client, tui.CatalogViewOptions{
		Logger:    logger,
		Keys:      &keys,
		HidePanel: !cfg.ShowFilterPanel,
	})
	helpPage := tui.NewHelpPage(keys, catalogView.ID())
	app := tui.NewApp(catalogView, helpPage)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
