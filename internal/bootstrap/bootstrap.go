package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	historyinadapter "worktime/internal/modules/history/adapter/in"
	historyoutadapter "worktime/internal/modules/history/adapter/out"
	historyservice "worktime/internal/modules/history/service"
	historyusecase "worktime/internal/modules/history/usecase"
	idleinadapter "worktime/internal/modules/idle/adapter/in"
	idleoutadapter "worktime/internal/modules/idle/adapter/out"
	idleservice "worktime/internal/modules/idle/service"
	idleusecase "worktime/internal/modules/idle/usecase"
	sessioninadapter "worktime/internal/modules/session/adapter/in"
	sessionoutadapter "worktime/internal/modules/session/adapter/out"
	sessionservice "worktime/internal/modules/session/service"
	sessionusecase "worktime/internal/modules/session/usecase"
	settingsinadapter "worktime/internal/modules/settings/adapter/in"
	settingsoutadapter "worktime/internal/modules/settings/adapter/out"
	settingsservice "worktime/internal/modules/settings/service"
	settingsusecase "worktime/internal/modules/settings/usecase"
	"worktime/internal/platform/clock"
	"worktime/internal/platform/config"
	"worktime/internal/platform/id"
	"worktime/internal/platform/kv"
	"worktime/internal/platform/logging"
	uiapp "worktime/internal/ui/app"
)

type App struct {
	Config      config.Config
	Logger      *slog.Logger
	SessionCLI  sessioninadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler
	History     historyinadapter.Handler
	IdleTUI     idleinadapter.TUIHandler

	closers []func() error
}

// Options tune process-level wiring. Zero values use the system clock,
// UUID ids and a stderr logger at the configured level.
type Options struct {
	Clock  clock.Clock
	IDs    id.Generator
	Logger *slog.Logger
	Store  kv.Store
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	ids := opts.IDs
	if ids == nil {
		ids = id.UUID{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(cfg.Log.Level, os.Stderr, false)
	}

	app := &App{Config: cfg, Logger: logger}
	store := opts.Store
	if store == nil {
		opened, err := OpenStore(ctx, cfg.Store)
		if err != nil {
			return nil, err
		}
		store = opened
		app.closers = append(app.closers, opened.Close)
	}

	sessionRepo := sessionoutadapter.NewKVSessionStore(store)
	sessionSvc := sessionservice.NewSessionService(clk, ids, sessionRepo, sessionRepo, logger.With("module", "session"))
	if err := sessionSvc.Restore(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("restore sessions: %w", err)
	}
	app.closers = append(app.closers, func() error { sessionSvc.Close(); return nil })
	sessionUC := sessionusecase.NewInteractor(sessionSvc, clk)

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewKVSettingsStore(store),
		logger.With("module", "settings"),
	))

	historyUC := historyusecase.NewInteractor(
		historyservice.NewHistoryService(historyoutadapter.NewSessionSourceAdapter(sessionUC)),
		clk,
	)

	watchdog := idleservice.NewWatchdog(clk, idleservice.WithLogger(logger.With("module", "idle")))
	app.closers = append(app.closers, func() error { watchdog.Close(); return nil })
	idleUC := idleusecase.NewInteractor(watchdog, idleoutadapter.NewSessionTrackerAdapter(sessionUC), clk, logger.With("module", "idle"))

	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.SettingsCLI = settingsinadapter.NewCLIHandler(settingsUC)
	app.History = historyinadapter.NewHandler(historyUC)
	app.IdleTUI = idleinadapter.NewTUIHandler(idleUC)
	return app, nil
}

// OpenStore opens the kv backend named by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (kv.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := kv.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case config.DriverMySQL:
		store, err := kv.NewMySQLStore(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql store: %w", err)
		}
		return store, nil
	case config.DriverFile, "":
		store, err := kv.NewFileStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SessionCLI, app.SettingsCLI, app.History, app.IdleTUI)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := program.Run()
	return err
}
