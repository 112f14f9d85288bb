package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/poofware/equity-registry/internal/config"
	"github.com/poofware/equity-registry/internal/repositories"
	"github.com/poofware/equity-registry/internal/services"
	"github.com/poofware/equity-registry/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// App holds the DB pool, the account store and the services built on it.
type App struct {
	Config      *config.Config
	DB          *pgxpool.Pool
	Store       repositories.AccountStore
	Registry    services.RegistryService
	RateLimiter services.RateLimiterService
}

func NewApp(cfg *config.Config) (*App, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = newDBPool(ctx, cfg.DBUrl)
		cancel()
		if err == nil {
			utils.Logger.Infof("equity-registry connected to DB on attempt %d", i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
		}
		time.Sleep(backoff)
		backoff *= 2
	}

	if err := repositories.EnsureSchema(context.Background(), dbPool); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ensure accounts schema: %w", err)
	}

	store := repositories.NewPostgresAccountStore(dbPool)

	return &App{
		Config:      cfg,
		DB:          dbPool,
		Store:       store,
		Registry:    services.NewRegistryService(store),
		RateLimiter: services.NewRateLimiterService(cfg.MutationRateLimit, cfg.RateLimitWindow),
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("equity-registry DB connection closed.")
	}
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid DB URL: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
