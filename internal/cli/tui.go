package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"griddeck/internal/config"
	"griddeck/internal/dashboard"
	"griddeck/internal/drag"
	"griddeck/internal/layoutstore"
	"griddeck/internal/telemetry"
	"griddeck/internal/ui"
)

// runTUI boots the dashboard: config, backend, store hydration, the
// debounced saver, and the Bubble Tea program.
func runTUI(ctx context.Context, cfgFile string, flags *pflag.FlagSet) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(cfgFile, flags)
	if err != nil {
		return err
	}

	shutdownTelemetry, err := telemetry.Init(ctx)
	if err != nil {
		logger.Warn("telemetry init failed", "err", err)
	}

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend() //nolint:errcheck

	store := dashboard.NewStore(dashboard.Config{
		GridCols:     cfg.GridCols,
		MaxRows:      cfg.MaxRows,
		HistoryDepth: cfg.HistoryDepth,
	})

	if err := hydrate(ctx, store, backend, cfg.Owner, logger); err != nil {
		return err
	}

	saver := layoutstore.NewSaver(backend, store,
		time.Duration(cfg.DebounceMS)*time.Millisecond, logger)
	store.Subscribe(saver.Notify)
	defer saver.Stop()

	coord := drag.New(store)
	model := ui.NewAppModel(store, coord)
	model.RetryPersist = saver.Retry

	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	// Final chance to persist what the debounce window was still holding.
	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := saver.Flush(flushCtx); err != nil {
		logger.Error("final save failed", "err", err)
	}
	if shutdownTelemetry != nil {
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "err", err)
		}
	}
	return nil
}

// hydrate loads the owner's persisted layouts into the store and activates
// one, creating a default layout on first run. Corrupt or inconsistent
// layouts are skipped with a warning rather than blocking startup.
func hydrate(ctx context.Context, store *dashboard.Store, backend layoutstore.Store, owner string, logger *log.Logger) error {
	store.SetLoading(true)
	defer store.SetLoading(false)

	layouts, err := backend.List(ctx, owner)
	if err != nil {
		return fmt.Errorf("list layouts: %w", err)
	}

	active := ""
	for _, l := range layouts {
		if err := store.ImportLayout(l); err != nil {
			logger.Warn("skipping layout", "id", l.ID, "err", err)
			continue
		}
		if l.Active {
			active = l.ID
		}
	}

	imported := store.Layouts()
	if len(imported) == 0 {
		if _, err := store.CreateLayout("default", owner); err != nil {
			return fmt.Errorf("create default layout: %w", err)
		}
		return nil
	}
	if active == "" {
		active = imported[0].ID
	}
	if _, err := store.SwitchActiveLayout(active); err != nil {
		return fmt.Errorf("activate layout: %w", err)
	}
	return nil
}
