package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/mindjournal-backend/internal/config"
	"github.com/AnshRaj112/mindjournal-backend/internal/database"
	"github.com/AnshRaj112/mindjournal-backend/pkg/utils"
)

// openStore connects the configured backend, prepares its schema or indexes
// and wraps it in a sealing store when ENCRYPTION_KEY is set.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (database.JournalStore, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var (
		store   database.JournalStore
		closeFn func()
	)

	switch cfg.StoreDriver {
	case config.StoreMongo:
		db, err := database.ConnectMongo(cfg.MongoURI, logger)
		if err != nil {
			return nil, nil, err
		}
		repo := database.NewMongoJournalRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("⚠️  failed to ensure MongoDB journal indexes", zap.Error(err))
		} else {
			logger.Info("✅ MongoDB journal indexes ensured")
		}
		store = repo
		closeFn = func() {
			if err := database.DisconnectMongo(db); err != nil {
				logger.Error("Failed to disconnect MongoDB", zap.Error(err))
			}
		}

	case config.StorePostgres:
		db, err := database.ConnectPostgres(cfg.PostgresURI, logger)
		if err != nil {
			return nil, nil, err
		}
		repo, err := initSQLStore(ctx, db, database.DialectPostgres)
		if err != nil {
			return nil, nil, err
		}
		store, closeFn = repo, func() { db.Close() }

	case config.StoreSQLite:
		db, err := database.ConnectSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		repo, err := initSQLStore(ctx, db, database.DialectSQLite)
		if err != nil {
			return nil, nil, err
		}
		store, closeFn = repo, func() { db.Close() }

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.EncryptionKey == "" {
		logger.Warn("⚠️  ENCRYPTION_KEY not set. Journal content is stored unencrypted")
		return store, closeFn, nil
	}

	key, err := utils.ParseEncryptionKey(cfg.EncryptionKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid ENCRYPTION_KEY (must be base64-encoded 32 bytes, generate with: openssl rand -base64 32): %w", err)
	}
	sealer, err := utils.NewSealer(key)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	logger.Info("✅ Encryption key configured, journal content sealed at rest")
	return database.NewSealedJournalStore(store, sealer), closeFn, nil
}

func initSQLStore(ctx context.Context, db *sql.DB, dialect string) (*database.SQLJournalRepository, error) {
	repo := database.NewSQLJournalRepository(db, dialect)
	if err := repo.InitSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create %s schema: %w", dialect, err)
	}
	return repo, nil
}
