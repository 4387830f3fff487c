package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"golang.org/x/term"

	httpapi "github.com/brianoflondon/clock-dashboard/internal/api/http"
	"github.com/brianoflondon/clock-dashboard/internal/config"
	"github.com/brianoflondon/clock-dashboard/internal/glyph"
	"github.com/brianoflondon/clock-dashboard/internal/scheduler"
	"github.com/brianoflondon/clock-dashboard/internal/screen"
	"github.com/brianoflondon/clock-dashboard/internal/store"
	"github.com/brianoflondon/clock-dashboard/internal/weather"
	"github.com/brianoflondon/clock-dashboard/internal/weather/providers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "clock-dashboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	logOutput, closeLog, err := initLogSink(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	// Outbound requests carry their own per-fetch timeout.
	httpClient := &http.Client{}

	var source weather.Source
	switch cfg.WeatherFormat {
	case config.FormatLine:
		source = providers.NewSummaryProvider(httpClient, cfg.WeatherURL, cfg.WeatherUserAgent, cfg.WeatherTimeout)
	default:
		source = providers.NewWttrProvider(httpClient, cfg.WeatherURL, cfg.WeatherUserAgent, cfg.WeatherTimeout, cfg.Location)
	}

	var snapshots weather.Store
	if cfg.StatusAddr != "" {
		snapshots = store.NewMemoryStore(cfg.StatusHistory)
	}
	service := weather.NewService(source, snapshots, cfg.RefreshInterval)

	surface, err := screen.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	defer surface.Close()

	// The terminal owns stdout from here on.
	log.SetOutput(logOutput)
	defer log.SetOutput(os.Stderr)

	if snapshots != nil {
		app := httpapi.NewApp(snapshots, logOutput)
		go func() {
			if err := app.Listen(cfg.StatusAddr); err != nil {
				log.Printf("ERROR: status server stopped: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Printf("ERROR: status server shutdown: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dashboard := scheduler.New(cfg, surface, service, glyph.NewBuilder(glyph.FigletRenderer{}))
	return dashboard.Run(ctx)
}

// initLogSink returns where log output goes while the dashboard is on screen.
func initLogSink(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
