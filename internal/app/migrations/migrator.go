package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// versionTable tracks the applied schema version
const versionTable = "schema_version"

// Migrator manages database migrations
type Migrator struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger,
	}
}

// Files exposes the embedded migration set, rooted at the directory holding the SQL files
func Files() (fs.FS, error) {
	return fs.Sub(migrationFiles, "sql")
}

// Migrate applies every embedded migration that has not been applied yet
func (m *Migrator) Migrate(ctx context.Context) error {
	conn, err := m.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring migration connection: %w", err)
	}
	defer conn.Release()

	migrator, err := tern.NewMigrator(ctx, conn.Conn(), versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := Files()
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	if err := migrator.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := migrator.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	migrator.OnStart = func(sequence int32, name, direction, sql string) {
		m.logger.Info().Int32("sequence", sequence).Str("name", name).Str("direction", direction).Msg("Applying migration")
	}

	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	if from == int32(len(migrator.Migrations)) {
		m.logger.Info().Msgf("database schema up to date, version %d", len(migrator.Migrations))
	} else {
		m.logger.Info().Msgf("migrated database schema, from %d to %d", from, len(migrator.Migrations))
	}
	return nil
}
