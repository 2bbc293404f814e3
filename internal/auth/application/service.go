package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/auth/domain"
	"github.com/ravosoft/photohub/backend/internal/auth/ports"
	"github.com/ravosoft/photohub/backend/internal/platform/database"
	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/events"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/ravosoft/photohub/backend/internal/platform/password"
	"github.com/ravosoft/photohub/backend/internal/platform/validator"
	userDomain "github.com/ravosoft/photohub/backend/internal/users/domain"
	userPorts "github.com/ravosoft/photohub/backend/internal/users/ports"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type SessionConfig struct {
	RefreshTTL time.Duration
}

type RegisterParams struct {
	Email       string
	Username    string
	Password    string
	DisplayName *string
}

type LoginParams struct {
	Email     string
	Password  string
	UserAgent string
	IP        string
}

// AuthResult is what the transport layer needs to answer a login or
// refresh: the user, the access token and the new refresh token.
type AuthResult struct {
	User             *userDomain.User
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	SessionID        uuid.UUID
}

type AuthService struct {
	users      userPorts.UserRepository
	sessions   ports.SessionRepository
	denylist   ports.TokenDenylist
	tokens     *TokenIssuer
	hasher     PasswordHasher
	tx         database.TransactionManager
	logger     logger.Logger
	refreshTTL time.Duration
	now        func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	users userPorts.UserRepository,
	sessions ports.SessionRepository,
	denylist ports.TokenDenylist,
	tokens *TokenIssuer,
	hasher PasswordHasher,
	tx database.TransactionManager,
	cfg SessionConfig,
	logger logger.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		denylist:   denylist,
		tokens:     tokens,
		hasher:     hasher,
		tx:         tx,
		logger:     logger,
		refreshTTL: cfg.RefreshTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*userDomain.User, error) {
	if err := password.Validate(params.Password); err != nil {
		return nil, ErrWeakPassword.WithDetails(err.Error())
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := userDomain.NewUser(params.Email, params.Username, hash)
	if err != nil {
		if errors.Is(err, userDomain.ErrInvalidEmail) {
			return nil, ErrInvalidEmail
		}
		return nil, ErrInvalidUsername.WithDetails(err.Error())
	}
	if params.DisplayName != nil {
		if err := user.UpdateProfile(validator.SanitizeTextPtr(params.DisplayName), nil); err != nil {
			return nil, ErrInvalidProfile.WithDetails(err.Error())
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, userPorts.ErrEmailTaken):
			return nil, ErrEmailTaken
		case errors.Is(err, userPorts.ErrUsernameTaken):
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, userDomain.NormalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, userPorts.ErrUserNotFound) {
			// Burn a comparison so unknown emails cost the same as bad passwords.
			_ = s.hasher.Compare(s.fallbackHash(), params.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, params.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	plain, hash, err := NewRefreshToken()
	if err != nil {
		return nil, err
	}
	now := s.now()
	session := domain.NewSession(user.ID, hash, params.UserAgent, params.IP, s.refreshTTL, now)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID, "session_id", session.ID)
	return s.issue(user, session, plain, now)
}

// Refresh rotates the refresh token of a live session. A token that does
// not match any session, or matches a revoked one, is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, ErrTokenMissing
	}

	var result *AuthResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := s.sessions.FindByRefreshTokenHash(ctx, HashRefreshToken(refreshToken))
		if err != nil {
			if errors.Is(err, ports.ErrSessionNotFound) {
				return ErrSessionRevoked
			}
			return fmt.Errorf("failed to find session: %w", err)
		}

		now := s.now()
		if !session.IsActive(now) {
			return ErrSessionRevoked
		}

		user, err := s.users.FindByID(ctx, session.UserID)
		if err != nil {
			if errors.Is(err, userPorts.ErrUserNotFound) {
				return ErrSessionRevoked
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		plain, hash, err := NewRefreshToken()
		if err != nil {
			return err
		}
		previous := session.RefreshTokenHash
		session.Rotate(hash, s.refreshTTL, now)
		if err := s.sessions.Rotate(ctx, session, previous); err != nil {
			if errors.Is(err, ports.ErrSessionNotFound) {
				// A concurrent refresh redeemed the token first.
				return ErrSessionRevoked
			}
			return fmt.Errorf("failed to rotate session: %w", err)
		}

		result, err = s.issue(user, session, plain, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Logout ends the caller's session. Either argument may be empty: a client
// with an expired access token can still log out with its refresh token.
func (s *AuthService) Logout(ctx context.Context, principal *domain.Principal, refreshToken string) error {
	now := s.now()

	var session *domain.Session
	var err error
	switch {
	case principal != nil:
		session, err = s.sessions.FindByID(ctx, principal.SessionID)
	case refreshToken != "":
		session, err = s.sessions.FindByRefreshTokenHash(ctx, HashRefreshToken(refreshToken))
	default:
		return nil
	}
	if err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return fmt.Errorf("failed to find session: %w", err)
	}

	if session != nil {
		session.Revoke(now)
		if err := s.sessions.Update(ctx, session); err != nil {
			return fmt.Errorf("failed to revoke session: %w", err)
		}
	}

	if principal != nil {
		if err := s.denylist.Deny(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
			return fmt.Errorf("failed to denylist token: %w", err)
		}
	}
	return nil
}

// LogoutAll revokes every session of the caller, the current one included.
func (s *AuthService) LogoutAll(ctx context.Context, principal domain.Principal) error {
	revoked, err := s.sessions.RevokeAllForUser(ctx, principal.UserID, uuid.Nil, s.now())
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	if err := s.denylist.Deny(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
		return fmt.Errorf("failed to denylist token: %w", err)
	}
	s.logger.Info(ctx, "all sessions revoked", "user_id", principal.UserID, "count", revoked)
	return nil
}

// ChangePassword verifies the current password, stores the new hash and
// signs out every other device.
func (s *AuthService) ChangePassword(ctx context.Context, principal domain.Principal, current, next string) error {
	if err := password.Validate(next); err != nil {
		return ErrWeakPassword.WithDetails(err.Error())
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.users.FindByID(ctx, principal.UserID)
		if err != nil {
			if errors.Is(err, userPorts.ErrUserNotFound) {
				return ErrSessionRevoked
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		if err := s.hasher.Compare(user.PasswordHash, current); err != nil {
			if errors.Is(err, password.ErrMismatch) {
				return ErrInvalidCredentials
			}
			return fmt.Errorf("failed to verify password: %w", err)
		}

		hash, err := s.hasher.Hash(next)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.ChangePasswordHash(hash)
		if err := s.users.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		if _, err := s.sessions.RevokeAllForUser(ctx, user.ID, principal.SessionID, s.now()); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		return nil
	})
}

// Authenticate turns a raw access token into a principal. The token must
// verify, must not be denylisted and its session must still be live.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*domain.Principal, error) {
	if rawToken == "" {
		return nil, ErrTokenMissing
	}

	principal, err := s.tokens.ParseAccess(rawToken)
	if err != nil {
		if errors.Is(err, errTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	denied, err := s.denylist.IsDenied(ctx, principal.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token denylist: %w", err)
	}
	if denied {
		return nil, ErrSessionRevoked
	}

	session, err := s.sessions.FindByID(ctx, principal.SessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, ErrSessionRevoked
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if !session.IsActive(s.now()) || session.UserID != principal.UserID {
		return nil, ErrSessionRevoked
	}

	return &principal, nil
}

// Me returns the user behind the principal.
func (s *AuthService) Me(ctx context.Context, principal domain.Principal) (*userDomain.User, error) {
	user, err := s.users.FindByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, userPorts.ErrUserNotFound) {
			return nil, ErrSessionRevoked
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// RegisterSubscribers drops sessions of deleted accounts.
func (s *AuthService) RegisterSubscribers(bus *eventbus.Bus) {
	bus.Subscribe(events.UserDeletedTopic, func(ctx context.Context, event eventbus.Event) error {
		payload, ok := event.Payload.(events.UserDeletedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T", event.Payload)
		}
		return s.sessions.DeleteAllForUser(ctx, payload.UserID)
	})
}

func (s *AuthService) issue(user *userDomain.User, session *domain.Session, refreshToken string, now time.Time) (*AuthResult, error) {
	access, principal, err := s.tokens.IssueAccess(user.ID, user.Email, session.ID, now)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:             user,
		AccessToken:      access,
		AccessExpiresAt:  principal.ExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: session.ExpiresAt,
		SessionID:        session.ID,
	}, nil
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("photohub-unknown-account")
		if err != nil {
			s.logger.Warn(context.Background(), "failed to prepare fallback hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
