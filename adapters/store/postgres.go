package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/database"
	"github.com/adcpm/sc2/ports"
)

// PostgresStore persists scope grants and user metadata in Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var (
	_ ports.ScopeStore    = (*PostgresStore)(nil)
	_ ports.MetadataStore = (*PostgresStore)(nil)
)

// NewPostgresStore opens a connection pool and runs pending migrations.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// GetScope returns the stored grant for (clientID, user).
func (s *PostgresStore) GetScope(ctx context.Context, clientID, user string) ([]string, error) {
	const query = `
        SELECT scope FROM authorizations WHERE client_id = $1 AND account = $2
    `
	var scope []string
	err := s.pool.QueryRow(ctx, query, clientID, user).Scan(&scope)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get scope grant: %w", err)
	}
	return scope, nil
}

// SaveScope upserts the grant for (clientID, user) in a single statement, so
// two concurrent saves can never race a duplicate create against an update.
func (s *PostgresStore) SaveScope(ctx context.Context, clientID, user string, scope []string) error {
	const query = `
        INSERT INTO authorizations (client_id, account, scope, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        ON CONFLICT (client_id, account)
        DO UPDATE SET scope = EXCLUDED.scope, updated_at = NOW()
    `
	if _, err := s.pool.Exec(ctx, query, clientID, user, scope); err != nil {
		return fmt.Errorf("failed to save scope grant: %w", err)
	}
	return nil
}

// GetMetadata returns the stored metadata object for user.
func (s *PostgresStore) GetMetadata(ctx context.Context, user string) (json.RawMessage, error) {
	const query = `
        SELECT metadata FROM user_metadata WHERE account = $1
    `
	var metadata json.RawMessage
	err := s.pool.QueryRow(ctx, query, user).Scan(&metadata)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user metadata: %w", err)
	}
	return metadata, nil
}

// SetMetadata replaces the metadata object for user.
func (s *PostgresStore) SetMetadata(ctx context.Context, user string, metadata json.RawMessage) error {
	const query = `
        INSERT INTO user_metadata (account, metadata, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (account)
        DO UPDATE SET metadata = EXCLUDED.metadata, updated_at = NOW()
    `
	if _, err := s.pool.Exec(ctx, query, user, metadata); err != nil {
		return fmt.Errorf("failed to set user metadata: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
