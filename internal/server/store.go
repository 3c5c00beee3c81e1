package server

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/starwars-api/internal/config"
	"github.com/sakif/starwars-api/internal/repository"
	pgRepo "github.com/sakif/starwars-api/internal/repository/postgres"
	sqliteRepo "github.com/sakif/starwars-api/internal/repository/sqlite"
)

// Store is a repository.Store the server owns and must close.
type Store interface {
	repository.Store
	Close() error
}

// OpenStore picks the backend from configuration: postgres when URL is a
// postgres URL, otherwise the sqlite file at Path. Both apply the schema on
// open, so a returned Store is ready to use.
func OpenStore(cfg config.DatabaseConfig, logger *slog.Logger) (Store, error) {
	if pgRepo.IsURL(cfg.URL) {
		db, err := pgRepo.New(cfg.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		logger.Info("using postgres store")
		return db, nil
	}
	if cfg.URL != "" {
		logger.Warn("DATABASE_URL is not a postgres URL, falling back to sqlite",
			slog.String("path", cfg.Path))
	}

	if cfg.Path != ":memory:" {
		// sqlite creates the file but not its directory (like `mkdir -p`).
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	db, err := sqliteRepo.New(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	logger.Info("using sqlite store", slog.String("path", cfg.Path))
	return db, nil
}
