package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/bestiary/internal/duckdb"
	"github.com/tinytelemetry/bestiary/internal/httpserver"
	"github.com/tinytelemetry/bestiary/internal/logging"
	"github.com/tinytelemetry/bestiary/internal/pokeapi"
	"github.com/tinytelemetry/bestiary/internal/syncer"
)

type daemon struct {
	logger  *zap.Logger
	store   *duckdb.Store
	client  *pokeapi.Client
	syncer  *syncer.Syncer
	cleanup func()
}

func openDaemon(cfg appConfig) (*daemon, error) {
	logger, cleanupLogger := logging.New(logging.Config{Path: cfg.LogPath, Stderr: true})

	store, err := duckdb.NewStore(cfg.DBPath, cfg.QueryTimeout)
	if err != nil {
		cleanupLogger()
		return nil, fmt.Errorf("failed to initialize DuckDB: %w", err)
	}

	client, err := pokeapi.NewClient(pokeapi.Config{
		BaseURL:        cfg.APIBaseURL,
		CollectionPath: cfg.CollectionPath,
		PageSize:       cfg.PageSize,
		Timeout:        cfg.RequestTimeout,
		MaxConcurrent:  cfg.MaxConcurrentFetches,
	})
	if err != nil {
		store.Close()
		cleanupLogger()
		return nil, fmt.Errorf("configuring catalog client: %w", err)
	}

	s := syncer.New(client, store, logger, syncer.Config{
		Interval: cfg.RefreshInterval,
		Timeout:  cfg.LoadTimeout,
	})
	return &daemon{
		logger: logger,
		store:  store,
		client: client,
		syncer: s,
		cleanup: func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing store failed", zap.Error(err))
			}
			cleanupLogger()
		},
	}, nil
}

// exportSnapshot copies the database file when an export path is configured.
func (d *daemon) exportSnapshot(path string) {
	if path == "" {
		return
	}
	if err := d.store.ExportTo(path); err != nil {
		d.logger.Warn("catalog export failed", zap.String("path", path), zap.Error(err))
		return
	}
	d.logger.Info("catalog exported", zap.String("path", path))
}

// runOnce performs a single load cycle and exits.
func runOnce(cfg appConfig) error {
	d, err := openDaemon(cfg)
	if err != nil {
		return err
	}
	defer d.cleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := d.syncer.Reload(ctx); err != nil {
		return fmt.Errorf("catalog load failed: %w", err)
	}
	d.exportSnapshot(cfg.ExportPath)

	st := d.syncer.Status()
	fmt.Printf("Stored %d creatures in %s\n", st.ItemCount, shortenPath(cfg.DBPath))
	return nil
}

// runServer keeps the snapshot fresh and serves the HTTP API until a signal
// arrives.
func runServer(cfg appConfig) error {
	d, err := openDaemon(cfg)
	if err != nil {
		return err
	}
	defer d.cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		os.Exit(1)
	}()

	printStartupBanner(cfg, d.client.CollectionURL())

	var apiServer *httpserver.Server
	if cfg.APIEnabled {
		apiServer = httpserver.NewServer(cfg.APIAddr, d.store, d.syncer, d.logger)
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d.syncer.Start(gctx)
		<-gctx.Done()
		d.syncer.Stop()
		return nil
	})

	if apiServer != nil {
		g.Go(func() error {
			<-gctx.Done()
			return apiServer.Stop()
		})
	}

	if err := g.Wait(); err != nil {
		d.logger.Error("daemon: errgroup exited with error", zap.Error(err))
	}

	d.exportSnapshot(cfg.ExportPath)
	signal.Stop(sigCh)
	return nil
}

func printStartupBanner(cfg appConfig, collectionURL string) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	logo := cyan.Bold(true).Render(`
    ╔╗ ╔═╗╔═╗╔╦╗╦╔═╗╦═╗╦ ╦
    ╠╩╗║╣ ╚═╗ ║ ║╠═╣╠╦╝╚╦╝
    ╚═╝╚═╝╚═╝ ╩ ╩╩ ╩╩╚═ ╩ `)

	var lines []string
	lines = append(lines, "", logo, "    "+dim.Render("v"+version), "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator, "")

	lines = append(lines, bold.Render("    Source"), "")
	lines = append(lines, fmt.Sprintf("    %s  Collection     %s", check, cyan.Render(collectionURL)))
	if cfg.RefreshInterval > 0 {
		lines = append(lines, fmt.Sprintf("    %s  Refresh        %s", check, dim.Render("every "+cfg.RefreshInterval.String())))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Refresh        %s", dot, dim.Render("once at startup")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Gateway"), "")
	if cfg.APIEnabled {
		lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", check, cyan.Render(cfg.APIAddr)))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", dot, dim.Render("disabled")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Storage"), "")
	lines = append(lines, fmt.Sprintf("    %s  Storage        %s", check, dim.Render(shortenPath(cfg.DBPath))))
	if cfg.ExportPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Export         %s", check, dim.Render(shortenPath(cfg.ExportPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Export         %s", dot, dim.Render("disabled")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Config"), "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}
	lines = append(lines, fmt.Sprintf("    %s  Log File       %s", check, dim.Render(shortenPath(cfg.LogPath))))

	lines = append(lines, "", separator, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"), "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
