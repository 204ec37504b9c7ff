// Package cli wires configuration, logging and use cases for the dragkit commands.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/dragkit/internal/application/usecase"
	"github.com/bnema/dragkit/internal/bridge"
	"github.com/bnema/dragkit/internal/cli/styles"
	"github.com/bnema/dragkit/internal/dnd"
	"github.com/bnema/dragkit/internal/domain/build"
	"github.com/bnema/dragkit/internal/domain/repository"
	"github.com/bnema/dragkit/internal/infrastructure/config"
	"github.com/bnema/dragkit/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dragkit/internal/infrastructure/scheduler"
	"github.com/bnema/dragkit/internal/infrastructure/scripting"
	"github.com/bnema/dragkit/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	// Journal is nil when the journal is disabled. The database opens on first use.
	Journal repository.DragJournalRepository
	db      *sqlite.LazyDB

	// Use cases
	ListJournalUC *usecase.ListJournalUseCase
	RecordDragUC  *usecase.RecordDragUseCase

	ctx context.Context
}

// NewApp loads configuration from configFile (or the XDG default when empty)
// and builds the application context.
func NewApp(configFile string) (*App, error) {
	mgr, err := config.NewManager(configFile)
	if err != nil {
		return nil, fmt.Errorf("config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)
	logger.Debug().Str("config_file", mgr.GetConfigFile()).Msg("configuration loaded")

	app := &App{
		Config:  cfg,
		Manager: mgr,
		Theme:   styles.NewTheme(),
		ctx:     ctx,
	}

	if cfg.Journal.Enabled {
		app.db = sqlite.NewLazyDB(cfg.Journal.Path)
		app.Journal = sqlite.NewLazyJournalRepository(app.db)
		app.ListJournalUC = usecase.NewListJournalUseCase(app.Journal)
		app.RecordDragUC = usecase.NewRecordDragUseCase(app.Journal, scheduler.NewLoop(0))
	}

	return app, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return logging.FromContext(a.ctx)
}

// SimulateOptions maps the drag and zone settings onto the simulator.
func (a *App) SimulateOptions() usecase.SimulateOptions {
	d := a.Config.Drag
	return usecase.SimulateOptions{
		TickInterval:   d.TickInterval,
		Animations:     d.Animations,
		SettleDuration: d.SettleDuration,
		VelocityDecay:  d.VelocityDecay,
		VelocityWeight: d.VelocityWeight,
		Resolve:        a.ResolveOptions(),
		Policies:       scripting.NewCompiler(a.ctx, scripting.DefaultTimeout),
	}
}

// ResolveOptions maps the zone settings onto index resolution.
func (a *App) ResolveOptions() dnd.ResolveOptions {
	return dnd.ResolveOptions{
		RowTolerance:     a.Config.Zone.RowTolerance,
		IndexColumnWidth: a.Config.Zone.IndexColumnWidth,
	}
}

// HandoffOptions maps the bridge and host settings onto a handoff.
func (a *App) HandoffOptions() usecase.HandoffOptions {
	b := a.Config.Bridge
	return usecase.HandoffOptions{
		AppKey:      b.AppKey,
		Retry:       bridge.RetryPolicy{Attempts: b.RetryAttempts, Delay: b.RetryDelay},
		CompatHosts: b.CompatHosts,
		Correlate:   b.Correlate,
		TokenTTL:    a.Config.Host.TokenTTL,
	}
}
