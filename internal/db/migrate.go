package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration is one forward schema step.
type Migration struct {
	Version int
	Up      string
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// Migrate applies every migration newer than the recorded schema version,
// each in its own transaction.
func Migrate(ctx context.Context, sqlDB *sql.DB, d Dialect, migrations []Migration) error {
	if _, err := sqlDB.ExecContext(ctx, createMigrationsTable); err != nil {
		return &Error{Op: OpMigrate, Err: fmt.Errorf("create schema_migrations: %w", err)}
	}

	var current int
	err := sqlDB.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current)
	if err != nil {
		return &Error{Op: OpMigrate, Err: fmt.Errorf("read schema version: %w", err)}
	}

	record := "INSERT INTO schema_migrations (version) VALUES (" + d.Placeholder(1) + ")"
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := applyMigration(ctx, sqlDB, m, record); err != nil {
			return &Error{Op: OpMigrate, Err: err}
		}
		current = m.Version
	}
	return nil
}

func applyMigration(ctx context.Context, sqlDB *sql.DB, m Migration, record string) error {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		return fmt.Errorf("apply migration %d: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, record, m.Version); err != nil {
		return fmt.Errorf("record migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.Version, err)
	}
	return nil
}
