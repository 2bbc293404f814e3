package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/ravosoft/photohub/backend/internal/users/domain"
	"github.com/ravosoft/photohub/backend/internal/users/ports"
)

// PasswordHasher hashes a plain password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type DemoConfig struct {
	Email    string
	Password string
}

// DemoUserSeeder creates a demo account when both credentials are set.
type DemoUserSeeder struct {
	repo   ports.UserRepository
	hasher PasswordHasher
	cfg    DemoConfig
	logger logger.Logger
}

func NewDemoUserSeeder(repo ports.UserRepository, hasher PasswordHasher, cfg DemoConfig, logger logger.Logger) *DemoUserSeeder {
	return &DemoUserSeeder{repo: repo, hasher: hasher, cfg: cfg, logger: logger}
}

func (s *DemoUserSeeder) Name() string {
	return "DemoUserSeeder"
}

func (s *DemoUserSeeder) Seed(ctx context.Context) error {
	if s.cfg.Email == "" || s.cfg.Password == "" {
		s.logger.Info(ctx, "demo credentials not configured, skipping")
		return nil
	}

	email := domain.NormalizeEmail(s.cfg.Email)
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check demo user: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := s.hasher.Hash(s.cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	user, err := domain.NewUser(email, usernameFromEmail(email), hash)
	if err != nil {
		return fmt.Errorf("invalid demo user: %w", err)
	}
	user.DisplayName = "Demo"

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ports.ErrUsernameTaken) {
			user.Username = user.Username + "-demo"
			err = s.repo.Create(ctx, user)
		}
		if err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}
	}

	s.logger.Info(ctx, "demo user created", "email", email, "user_id", user.ID)
	return nil
}

// usernameFromEmail keeps the local part's allowed characters.
func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	var b strings.Builder
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == '.' || r == '+':
			b.WriteRune('_')
		}
	}
	name := b.String()
	for len(name) < 3 {
		name += "_"
	}
	if len(name) > 30 {
		name = name[:30]
	}
	return name
}
