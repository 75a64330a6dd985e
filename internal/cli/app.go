// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/bnema/stagedock/internal/application/usecase"
	"github.com/bnema/stagedock/internal/cli/styles"
	"github.com/bnema/stagedock/internal/config"
	"github.com/bnema/stagedock/internal/domain/build"
	"github.com/bnema/stagedock/internal/domain/repository"
	"github.com/bnema/stagedock/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/stagedock/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info
	Layouts   repository.LayoutRepository

	// Use cases
	SnapshotUC *usecase.SnapshotLayoutUseCase
	RestoreUC  *usecase.RestoreLayoutUseCase

	db  *sql.DB
	ctx context.Context
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := config.Get()

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("STAGEDOCK_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(logLevel),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	ctx := logger.WithContext(context.Background())

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open layout database: %w", err)
	}

	layouts := sqlite.NewLayoutRepository(db)

	return &App{
		Config:     cfg,
		Theme:      styles.NewTheme(),
		Layouts:    layouts,
		SnapshotUC: usecase.NewSnapshotLayoutUseCase(layouts),
		// No live panels in the CLI; every restored tab is a placeholder.
		RestoreUC: usecase.NewRestoreLayoutUseCase(layouts, nil),
		db:        db,
		ctx:       ctx,
	}, nil
}

// Ctx returns the application context carrying the logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Close releases the application's resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
