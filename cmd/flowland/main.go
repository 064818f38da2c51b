package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/bongona/FlowLandSteward/internal/api"
	"github.com/bongona/FlowLandSteward/internal/config"
	"github.com/bongona/FlowLandSteward/internal/events"
	"github.com/bongona/FlowLandSteward/internal/metering"
	"github.com/bongona/FlowLandSteward/internal/notify"
	"github.com/bongona/FlowLandSteward/internal/store"
)

// @title FlowLand Steward API
// @version 1.0
// @description Tribute accounting, monetization rituals, agents and integrity checks for a sovereign domain.
// @host localhost:5000
// @BasePath /

var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// buildInfo returns version, commit, build time, and VCS details from the
// embedded Go build info. ldflags-injected values take priority; VCS info
// from debug.ReadBuildInfo fills in anything left as default.
func buildInfo() (ver, sha, built, dirty string) {
	ver = version
	sha = commit
	built = buildTime
	dirty = "clean"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if sha == "none" {
				sha = s.Value
			}
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "dirty"
			}
		}
	}

	return
}

func newLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func buildProviders(cfg *config.Config) []notify.Provider {
	var providers []notify.Provider
	for _, ncfg := range cfg.Notifications {
		switch ncfg.Type {
		case "ntfy":
			providers = append(providers, notify.NewNtfy(ncfg.URL, ncfg.Topic, ncfg.Token))
		case "webhook":
			providers = append(providers, notify.NewWebhook(ncfg.URL, ncfg.Method, ncfg.Headers))
		}
	}
	return providers
}

func main() {
	configPath := flag.String("config", "", "path to flowland.yml config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	ver, sha, built, dirty := buildInfo()

	if *showVersion {
		fmt.Printf("flowland %s\n  commit:    %s (%s)\n  built:     %s\n  go:        %s\n  platform:  %s/%s\n",
			ver, sha, dirty, built, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigFileNotFound) {
			fmt.Fprintf(os.Stderr, "error: %s\n\n", err)
			fmt.Fprintf(os.Stderr, "Copy the example config to get started:\n")
			fmt.Fprintf(os.Stderr, "  cp flowland.example.yml %s\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "error: loading config (%s): %s\n", *configPath, err)
		}
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.LogLevel, cfg.LogFormat))

	slog.Info("starting flowland steward",
		"version", ver,
		"commit", sha,
		"built", built,
		"dirty", dirty,
		"go", runtime.Version(),
		"listen", cfg.Listen,
	)

	st, err := store.New(cfg.DBPath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := st.EnsureSeeded(ctx); err != nil {
		slog.Error("seeding database", "error", err)
		os.Exit(1)
	}

	publisher, err := events.New(cfg.NATSURL)
	if err != nil {
		// Events are optional; keep serving without them.
		slog.Warn("connecting event publisher, events disabled", "url", cfg.NATSURL, "error", err)
		publisher = &events.NoopPublisher{}
	}
	defer publisher.Close()

	providers := buildProviders(cfg)
	dispatcher := notify.NewDispatcher(providers, cfg.NotificationCooldown.Duration)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.MetricsRetention.Duration > 0 {
		pruner := store.NewPruner(st, cfg.MetricsRetention.Duration)
		g.Go(func() error { return pruner.Run(ctx) })
	}

	server := api.NewServer(cfg.Listen, st, api.Deps{
		Notifier:    dispatcher,
		Publisher:   publisher,
		Sampler:     metering.NewSampler(cfg.RandomSeed),
		HistoryDays: cfg.HistoryDays,
	})
	g.Go(func() error { return server.Run(ctx) })

	slog.Info("all components started",
		"notifications", dispatcher.Providers(),
		"events", cfg.NATSURL != "",
		"metrics_retention", cfg.MetricsRetention.Duration,
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("fatal error", "error", err)
	}

	slog.Info("flowland steward stopped gracefully")
}
