// Package app wires configuration, storage and the recipe store together
// for the binaries under cmd/.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
)

// App holds the long-lived dependencies of a running process.
type App struct {
	Config *config.Config
	Log    *logger.Logger
	KV     storage.KV
	Store  *service.RecipeStore
	Redis  *redis.Client

	closers []func() error
}

// New opens the configured storage medium and builds the recipe store on it.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	kv, err := a.openKV(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.KV = storage.WithQuota(kv, cfg.StorageQuotaBytes)
	a.Store = service.NewRecipeStore(a.KV, cfg.StorageKey, log)

	// The rate limiter only needs Redis when one is configured.
	if a.Redis == nil && cfg.RateLimitCreate > 0 && cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg, log)
		if err != nil {
			log.Warn("Failed to connect to Redis for rate limiting, continuing without it", "error", err)
		} else {
			a.Redis = client
			a.closers = append(a.closers, client.Close)
		}
	}

	log.Info("Recipe store ready", "backend", cfg.StorageBackend, "key", cfg.StorageKey, "quota_bytes", cfg.StorageQuotaBytes)
	return a, nil
}

func (a *App) openKV(ctx context.Context) (storage.KV, error) {
	cfg := a.Config
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return storage.NewMemory(), nil

	case config.BackendFile:
		return storage.NewFile(cfg.DataDir)

	case config.BackendSQLite, config.BackendPostgres:
		var (
			db  *gorm.DB
			err error
		)
		if cfg.StorageBackend == config.BackendSQLite {
			db, err = database.NewSQLite(cfg.SQLiteFile(), a.Log)
		} else {
			db, err = database.NewPostgres(cfg, a.Log)
		}
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return database.Close(db) })

		kv := storage.NewSQL(db)
		if err := kv.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate kv table: %w", err)
		}
		return kv, nil

	case config.BackendRedis:
		client, err := database.NewRedisClient(cfg, a.Log)
		if err != nil {
			return nil, err
		}
		a.Redis = client
		a.closers = append(a.closers, client.Close)
		return storage.NewRedis(client, cfg.RedisPrefix), nil

	case config.BackendS3:
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewS3(s3cfg.Client, s3cfg.BucketName, s3cfg.Prefix), nil

	case config.BackendMongo:
		client, err := database.NewMongoClient(ctx, cfg.MongoURI, a.Log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })
		return storage.NewMongo(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

// Router builds the HTTP handler. Recipe creation is rate limited when
// RATE_LIMIT_CREATE is set and Redis is reachable.
func (a *App) Router() *gin.Engine {
	var limiter *middleware.RateLimiter
	if a.Config.RateLimitCreate > 0 {
		if a.Redis != nil {
			limiter = middleware.NewRecipeCreationRateLimiter(a.Redis, a.Config.RateLimitCreate, a.Log)
		} else {
			a.Log.Warn("RATE_LIMIT_CREATE is set but Redis is not configured, rate limiting disabled")
		}
	}
	return router.SetupRouter(a.Config, a.Store, a.Log, limiter)
}

// Close releases every connection opened by New, most recent first.
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

// Bootstrap loads configuration from the environment, builds the logger
// and opens the application.
func Bootstrap(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode())
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	log.Debug("Loaded configuration", "config", cfg.String())

	a, err := New(ctx, cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	a.closers = append([]func() error{func() error { log.Sync(); return nil }}, a.closers...)
	return a, nil
}
