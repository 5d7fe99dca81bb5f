package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"

	"github.com/salmankhalil12/Restaurant-Site/pkg/database"
	apperrors "github.com/salmankhalil12/Restaurant-Site/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the schema files for database.RunMigrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err) // directory is embedded at build time
	}
	return sub
}

const (
	selectValue = `SELECT value FROM cart_storage WHERE key = $1`
	upsertValue = `INSERT INTO cart_storage (key, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// Storage implements repository.Storage on a single Postgres table with one
// row per key.
type Storage struct {
	db database.DBTX
}

// NewStorage creates a Postgres-backed storage.
func NewStorage(db database.DBTX) *Storage {
	return &Storage{db: db}
}

// Get reads the value under key.
func (s *Storage) Get(ctx context.Context, key string) (value []byte, err error) {
	ctx, end := database.TraceQuery(ctx, database.SystemPostgres, "Get", selectValue)
	defer func() { end(err) }()

	var text string
	if err = s.db.QueryRow(ctx, selectValue, key).Scan(&text); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("storage key", key)
		}
		return nil, apperrors.Unavailable("postgres", fmt.Errorf("select storage key %s: %w", key, err))
	}
	return []byte(text), nil
}

// Set upserts the value under key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, end := database.TraceQuery(ctx, database.SystemPostgres, "Set", upsertValue)
	defer func() { end(err) }()

	if _, err = s.db.Exec(ctx, upsertValue, key, string(value)); err != nil {
		return apperrors.Unavailable("postgres", fmt.Errorf("upsert storage key %s: %w", key, err))
	}
	return nil
}

// Ping checks the connection.
func (s *Storage) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}
