// Package database opens the PostgreSQL connection used by the SQL user store
// and applies the embedded schema migrations.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	tern "github.com/jackc/tern/v2/migrate"

	applog "github.com/janisto/huma-users/internal/platform/logging"
)

const versionTable = "schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

// Open returns a pooled *sql.DB on the pgx driver after a successful ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrations returns the embedded migration files rooted at their directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(migrations, "migrations")
}

// Migrate brings the schema to the latest embedded version.
func Migrate(ctx context.Context, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect for migration: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("construct migrator: %w", err)
	}
	subtree, err := Migrations()
	if err != nil {
		return fmt.Errorf("migrations subtree: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("current schema version: %w", err)
	}
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	log := applog.SugarFromContext(ctx)
	if to := int32(len(m.Migrations)); from == to {
		log.Infof("database schema up to date, version %d", to)
	} else {
		log.Infof("migrated database schema from %d to %d", from, to)
	}
	return nil
}
