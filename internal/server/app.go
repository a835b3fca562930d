// Package server wires together the development server: sqlite storage,
// the presigned-grant service, and the HTTP posting endpoints.
package server

import (
	"context"
	"database/sql"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/powerdown/wikipost/internal/filex"
	"github.com/powerdown/wikipost/internal/logging"
	"github.com/powerdown/wikipost/internal/server/config"
	"github.com/powerdown/wikipost/internal/server/grants"
	"github.com/powerdown/wikipost/internal/server/httpapi"
	"github.com/powerdown/wikipost/internal/server/repositories/posts"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(config *config.Config, logger logging.Logger) *App {
	return &App{config: config, logger: logger}
}

// Run starts the server and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Relative database paths land in a data/ subdirectory next to the binary.
	dbPath := a.config.DatabasePath
	if !filepath.IsAbs(dbPath) {
		dir, err := filex.EnsureSubDir("data")
		if err != nil {
			return err
		}
		dbPath = filepath.Join(dir, dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := posts.InitSchema(ctx, db); err != nil {
		return err
	}
	repo := posts.NewSQLiteRepository(db)

	grantService := grants.NewService(a.config)
	httpServer := httpapi.New(a.config, a.logger, grantService, repo)

	return httpServer.Run(ctx)
}
