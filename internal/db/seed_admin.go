package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomhub/billing/internal/config"
	"github.com/roomhub/billing/internal/security"
)

// EnsureAdminUser creates the bootstrap account from config if it does not
// exist yet. A blank admin email or password disables seeding.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, name, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
		uuid.NewString(), "admin", cfg.AdminEmail, hash, cfg.AdminName, now, now,
	)

	return err
}
