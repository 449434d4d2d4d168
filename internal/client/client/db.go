package client

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/simkeeper/internal/client/config"
	"github.com/dmitrijs2005/simkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/simkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/simkeeper/internal/filex"
	"github.com/dmitrijs2005/simkeeper/internal/logging"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// File names created inside Config.DataDir.
const (
	SQLiteFile = "simkeeper.db"
	BoltFile   = "simkeeper.bolt"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// InitDatabase opens the sqlite file at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Open builds the key/value medium selected by cfg.Backend and wraps it in
// a kv.LoggingRepository.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (kv.Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownBackend, err)
	}

	repo, err := openMedium(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "backing store opened", "backend", cfg.Backend)
	return kv.NewLoggingRepository(log, repo), nil
}

func openMedium(ctx context.Context, cfg *config.Config) (kv.Repository, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		db, err := InitDatabase(ctx, filepath.Join(dir, SQLiteFile))
		if err != nil {
			return nil, err
		}
		return kv.NewSQLiteRepository(db), nil

	case config.BackendBolt:
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return kv.NewBoltRepository(filepath.Join(dir, BoltFile))

	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, cfg.RedisTimeout)
		defer cancel()

		repo, err := kv.DialRedis(ctx, &redis.Options{
			Addr:         cfg.RedisAddr,
			DB:           cfg.RedisDB,
			DialTimeout:  cfg.RedisTimeout,
			ReadTimeout:  cfg.RedisTimeout,
			WriteTimeout: cfg.RedisTimeout,
		}, cfg.RedisNamespace)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return repo, nil

	case config.BackendMemory:
		return kv.NewMemoryRepository(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}
