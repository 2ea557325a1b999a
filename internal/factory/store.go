// Package factory constructs the storage backend selected by configuration.
package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pinwords/keyword-backend/internal/config"
	storepkg "github.com/pinwords/keyword-backend/internal/store"
	storepg "github.com/pinwords/keyword-backend/internal/store/postgres"
	storesqlite "github.com/pinwords/keyword-backend/internal/store/sqlite"
)

// NewStore returns the store.Store selected by cfg.DBDriver. The sqlite
// backend serves the local target; postgres serves the cloud target. Schema
// bootstrap runs synchronously so health checks see a usable backend.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		st, err := storesqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return st, nil

	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("KEYWORD_BACKEND_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		st, err := storepg.Bootstrap(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("bootstrap postgres store: %w", err)
		}
		log.Info().Msg("postgres store ready")
		return st, nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
