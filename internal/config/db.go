package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

const (
	connectMaxRetries    = 5
	connectRetryInterval = 5 * time.Second
)

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(ctx context.Context, cfg DBConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	for i := 0; i < connectMaxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.Info().Msg("connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		log.Warn().Err(err).
			Int("attempt", i+1).Int("max_attempts", connectMaxRetries).
			Dur("retry_in", connectRetryInterval).
			Msg("failed to connect to database")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectRetryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", connectMaxRetries, err)
}

// Execer is satisfied by *pgxpool.Pool and pgxmock pools
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const guestsSchema = `
	CREATE TABLE IF NOT EXISTS guests (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL CHECK (char_length(btrim(name)) > 0),
		phone VARCHAR(11) NOT NULL CHECK (phone ~ '^[0-9]{10,11}$'),
		confirmed BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_guests_phone ON guests(phone);
	CREATE INDEX IF NOT EXISTS idx_guests_created_at ON guests(created_at);
	`

// AutoMigrate creates tables if they don't exist
func AutoMigrate(ctx context.Context, db Execer, log zerolog.Logger) error {
	if _, err := db.Exec(ctx, guestsSchema); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Info().Msg("AutoMigrate applied successfully")
	return nil
}
