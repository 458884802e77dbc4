package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"storeops/internal/domain/auth"
	"storeops/internal/platform/config"
)

// Seed creates the back-office admin user when seed credentials are set.
// Re-running is a no-op.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	err = pool.QueryRow(ctx,
		"INSERT INTO users (email, password_hash, role, status) VALUES ($1, $2, $3, $4) RETURNING id",
		email, hash, auth.RoleAdmin, auth.UserStatusActive,
	).Scan(&id)
	return err
}
