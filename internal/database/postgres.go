package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Config struct {
	URL              string
	MaxConns         int32
	StatementTimeout time.Duration
}

type DB struct {
	Pool             *pgxpool.Pool
	statementTimeout time.Duration
}

func New(ctx context.Context, config Config) (*DB, error) {
	poolConfig, err := config.PoolConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("Failed to connect to database, Error: %w", err)
	}

	return &DB{
		Pool:             pool,
		statementTimeout: config.StatementTimeout,
	}, nil
}

// NewWithBackoff creates the pool and pings it until the database answers,
// doubling the wait between attempts starting at one second.
func NewWithBackoff(ctx context.Context, config Config, maxRetries int, logger *zerolog.Logger) (*DB, error) {
	db, err := New(ctx, config)
	if err != nil {
		return nil, err
	}

	for attempt := range maxRetries {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			logger.Info().Dur("backoff", backoff).Msg("Waiting before database retry")
			select {
			case <-ctx.Done():
				db.Close()
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err = db.Ping(ctx); err == nil {
			logger.Info().Int("attempts_needed", attempt+1).Msg("Database connected")
			return db, nil
		}

		logger.Warn().Err(err).Int("attempt", attempt+1).Int("max_retries", maxRetries).Msg("Database ping failed")
	}

	db.Close()
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

func (c Config) PoolConfig() (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(c.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid database url %s: %w", redactURL(c.URL), err)
	}

	if c.MaxConns > 0 {
		poolConfig.MaxConns = c.MaxConns
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "vgs-agent"

	return poolConfig, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *DB) Close() {
	db.Pool.Close()
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}
