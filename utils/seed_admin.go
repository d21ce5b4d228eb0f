package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type AdminSeeder interface {
	// UpsertAdmin inserts the admin only when no user has that email.
	UpsertAdmin(ctx context.Context, email, passwordHash string) (created bool, err error)
}

func SeedAdminUser(ctx context.Context, users AdminSeeder, email, password string, log zerolog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD env vars")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	created, err := users.UpsertAdmin(ctx, email, hash)
	if err != nil {
		return fmt.Errorf("seed admin upsert failed: %w", err)
	}

	if created {
		log.Info().Str("email", email).Msg("admin user seeded")
	} else {
		log.Debug().Str("email", email).Msg("admin user already exists")
	}
	return nil
}
