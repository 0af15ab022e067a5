package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cinedex/internal/models"
	"cinedex/internal/observability"
	"cinedex/internal/repository"
	"cinedex/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPassword = "password123"
	// maxUserAttempts bounds retries when generated usernames or emails collide.
	maxUserAttempts = 5
)

// EnsureUsers tops the user table up to at least min rows.
func (s *Seeder) EnsureUsers(ctx context.Context, min int) error {
	n, err := s.store.Count(ctx, &models.User{})
	if err != nil {
		return err
	}
	missing := min - int(n)
	if missing <= 0 {
		return nil
	}

	password := defaultPassword
	if !s.opts.SkipBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		password = string(hashed)
	}

	created := 0
	for i := 0; i < missing; i++ {
		ok, err := s.createUser(ctx, password)
		if err != nil {
			return err
		}
		if ok {
			created++
		}
	}
	observability.Logger.InfoContext(ctx, "✓ user pool ready",
		slog.Int("created", created),
		slog.Int64("existing", n),
	)
	return nil
}

func (s *Seeder) createUser(ctx context.Context, password string) (bool, error) {
	f := s.values.f
	for attempt := 0; attempt < maxUserAttempts; attempt++ {
		username := strings.ToLower(f.Username()) + fmt.Sprintf("%d", f.Number(100, 9999))
		email := username + "@example.com"
		if validation.ValidateUsername(username) != nil || validation.ValidateEmail(email) != nil {
			continue
		}
		user := &models.User{
			Username: username,
			Email:    email,
			Password: password,
			Bio:      f.Sentence(10),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.UUID()),
		}
		out := s.store.Insert(ctx, user)
		switch out.Kind {
		case repository.Created:
			return true, nil
		case repository.Skipped:
			continue
		default:
			return false, fmt.Errorf("create user: %w", out.Err)
		}
	}
	observability.Logger.WarnContext(ctx, "gave up on a user after repeated invalid or colliding usernames")
	return false, nil
}
