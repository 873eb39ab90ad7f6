package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/roomhub/billing/internal/db/migrations"
)

// RunMigrations applies the embedded schema migrations through the pgx
// database/sql adapter. goose needs *sql.DB, so this opens its own short
// lived connection rather than reusing the pool.
func RunMigrations(ctx context.Context, dbURL string) error {
	sqldb, err := sql.Open("pgx", dbURL)

	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}

	defer sqldb.Close()

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, sqldb, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
