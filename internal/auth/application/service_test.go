package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/auth/application"
	"github.com/ravosoft/photohub/backend/internal/auth/domain"
	"github.com/ravosoft/photohub/backend/internal/auth/ports"
	"github.com/ravosoft/photohub/backend/internal/platform/apperror"
	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/events"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/ravosoft/photohub/backend/internal/platform/password"
	userDomain "github.com/ravosoft/photohub/backend/internal/users/domain"
	userPorts "github.com/ravosoft/photohub/backend/internal/users/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	userPorts.UserRepository
	mu    sync.Mutex
	users map[uuid.UUID]userDomain.User
}

func (f *fakeUsers) Create(_ context.Context, u *userDomain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return userPorts.ErrEmailTaken
		}
		if existing.Username == u.Username {
			return userPorts.ErrUsernameTaken
		}
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, userPorts.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, userPorts.ErrUserNotFound
}

func (f *fakeUsers) Update(_ context.Context, u *userDomain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = *u
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
	// beforeRotate runs ahead of the compare-and-swap in Rotate.
	beforeRotate func()
}

func (f *fakeSessions) Create(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID] = *s
	return nil
}

func (f *fakeSessions) FindByID(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessions) FindByRefreshTokenHash(_ context.Context, hash string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.RefreshTokenHash == hash {
			return &s, nil
		}
	}
	return nil, ports.ErrSessionNotFound
}

func (f *fakeSessions) Update(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID] = *s
	return nil
}

func (f *fakeSessions) Rotate(_ context.Context, s *domain.Session, previousHash string) error {
	if f.beforeRotate != nil {
		f.beforeRotate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.sessions[s.ID]
	if !ok || stored.RefreshTokenHash != previousHash || stored.RevokedAt != nil {
		return ports.ErrSessionNotFound
	}
	f.sessions[s.ID] = *s
	return nil
}

func (f *fakeSessions) RevokeAllForUser(_ context.Context, userID, except uuid.UUID, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, s := range f.sessions {
		if s.UserID == userID && id != except && s.RevokedAt == nil {
			s.Revoke(at)
			f.sessions[id] = s
			n++
		}
	}
	return n, nil
}

func (f *fakeSessions) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

type fakeDenylist struct {
	mu     sync.Mutex
	denied map[string]time.Time
}

func (f *fakeDenylist) Deny(_ context.Context, id string, until time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.denied[id] = until
	return nil
}

func (f *fakeDenylist) IsDenied(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.denied[id]
	return ok, nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type authFixture struct {
	service  *application.AuthService
	users    *fakeUsers
	sessions *fakeSessions
	denylist *fakeDenylist
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	issuer, err := application.NewTokenIssuer(application.TokenConfig{
		Secret:    "0123456789abcdef0123456789abcdef",
		Issuer:    "photohub-test",
		AccessTTL: 15 * time.Minute,
	})
	require.NoError(t, err)

	f := &authFixture{
		users:    &fakeUsers{users: make(map[uuid.UUID]userDomain.User)},
		sessions: &fakeSessions{sessions: make(map[uuid.UUID]domain.Session)},
		denylist: &fakeDenylist{denied: make(map[string]time.Time)},
	}
	f.service = application.NewAuthService(
		f.users, f.sessions, f.denylist, issuer,
		password.NewHasherWithCost(4), passthroughTx{},
		application.SessionConfig{RefreshTTL: 7 * 24 * time.Hour},
		logger.Nop{},
	)
	return f
}

func (f *authFixture) registerAndLogin(t *testing.T) *application.AuthResult {
	t.Helper()
	ctx := context.Background()
	_, err := f.service.Register(ctx, application.RegisterParams{
		Email: "Ada@Example.com", Username: "ada", Password: "correct-horse",
	})
	require.NoError(t, err)

	res, err := f.service.Login(ctx, application.LoginParams{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	return res
}

func TestAuthService_Register(t *testing.T) {
	displayName := "<i>Ada</i>"
	tests := []struct {
		name    string
		params  application.RegisterParams
		wantErr error
	}{
		{
			name:   "valid",
			params: application.RegisterParams{Email: "ada@example.com", Username: "ada", Password: "correct-horse", DisplayName: &displayName},
		},
		{
			name:    "weak password",
			params:  application.RegisterParams{Email: "ada@example.com", Username: "ada", Password: "short"},
			wantErr: application.ErrWeakPassword,
		},
		{
			name:    "bad email",
			params:  application.RegisterParams{Email: "not-an-email", Username: "ada", Password: "correct-horse"},
			wantErr: application.ErrInvalidEmail,
		},
		{
			name:    "bad username",
			params:  application.RegisterParams{Email: "ada@example.com", Username: "a!", Password: "correct-horse"},
			wantErr: application.ErrInvalidUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			user, err := f.service.Register(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ada", user.DisplayName)
			assert.NotEqual(t, "correct-horse", user.PasswordHash)
		})
	}
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.service.Register(ctx, application.RegisterParams{Email: "ada@example.com", Username: "ada", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = f.service.Register(ctx, application.RegisterParams{Email: "ADA@example.com", Username: "other", Password: "correct-horse"})
	assert.ErrorIs(t, err, application.ErrEmailTaken)

	_, err = f.service.Register(ctx, application.RegisterParams{Email: "other@example.com", Username: "ada", Password: "correct-horse"})
	assert.ErrorIs(t, err, application.ErrUsernameTaken)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	res := f.registerAndLogin(t)

	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.True(t, res.RefreshExpiresAt.After(res.AccessExpiresAt))

	stored, err := f.sessions.FindByID(context.Background(), res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, application.HashRefreshToken(res.RefreshToken), stored.RefreshTokenHash)

	_, err = f.service.Login(context.Background(), application.LoginParams{Email: "ada@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	_, err = f.service.Login(context.Background(), application.LoginParams{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
}

func TestAuthService_Authenticate(t *testing.T) {
	f := newAuthFixture(t)
	res := f.registerAndLogin(t)
	ctx := context.Background()

	principal, err := f.service.Authenticate(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, principal.UserID)
	assert.Equal(t, res.SessionID, principal.SessionID)

	_, err = f.service.Authenticate(ctx, "")
	assert.ErrorIs(t, err, application.ErrTokenMissing)

	_, err = f.service.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, application.ErrTokenInvalid)
}

func TestAuthService_RefreshRotates(t *testing.T) {
	f := newAuthFixture(t)
	first := f.registerAndLogin(t)
	ctx := context.Background()

	second, err := f.service.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = f.service.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, application.ErrSessionRevoked, "old refresh token is single use")

	_, err = f.service.Refresh(ctx, "")
	assert.ErrorIs(t, err, application.ErrTokenMissing)
}

func TestAuthService_RefreshLosesRaceToConcurrentRotation(t *testing.T) {
	f := newAuthFixture(t)
	first := f.registerAndLogin(t)
	ctx := context.Background()

	// Another request redeems the same token between our read and our write.
	f.sessions.beforeRotate = func() {
		f.sessions.beforeRotate = nil
		_, err := f.service.Refresh(ctx, first.RefreshToken)
		require.NoError(t, err)
	}

	_, err := f.service.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, application.ErrSessionRevoked)

	var active int
	for _, s := range f.sessions.sessions {
		if s.IsActive(time.Now()) {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestAuthService_LogoutDenylistsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	res := f.registerAndLogin(t)
	ctx := context.Background()

	principal, err := f.service.Authenticate(ctx, res.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, principal, res.RefreshToken))

	_, err = f.service.Authenticate(ctx, res.AccessToken)
	assert.ErrorIs(t, err, application.ErrSessionRevoked)
	assert.Contains(t, f.denylist.denied, principal.TokenID)

	_, err = f.service.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, application.ErrSessionRevoked)
}

func TestAuthService_LogoutWithRefreshTokenOnly(t *testing.T) {
	f := newAuthFixture(t)
	res := f.registerAndLogin(t)
	ctx := context.Background()

	require.NoError(t, f.service.Logout(ctx, nil, res.RefreshToken))

	_, err := f.service.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, application.ErrSessionRevoked)
	require.NoError(t, f.service.Logout(ctx, nil, ""))
}

func TestAuthService_LogoutAll(t *testing.T) {
	f := newAuthFixture(t)
	first := f.registerAndLogin(t)
	ctx := context.Background()
	second, err := f.service.Login(ctx, application.LoginParams{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	principal, err := f.service.Authenticate(ctx, first.AccessToken)
	require.NoError(t, err)
	require.NoError(t, f.service.LogoutAll(ctx, *principal))

	_, err = f.service.Authenticate(ctx, second.AccessToken)
	assert.ErrorIs(t, err, application.ErrSessionRevoked)
	_, err = f.service.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, application.ErrSessionRevoked)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	current := f.registerAndLogin(t)
	ctx := context.Background()
	other, err := f.service.Login(ctx, application.LoginParams{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	principal, err := f.service.Authenticate(ctx, current.AccessToken)
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, *principal, "wrong-password", "battery-staple")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	err = f.service.ChangePassword(ctx, *principal, "correct-horse", "short")
	assert.ErrorIs(t, err, application.ErrWeakPassword)

	require.NoError(t, f.service.ChangePassword(ctx, *principal, "correct-horse", "battery-staple"))

	_, err = f.service.Authenticate(ctx, current.AccessToken)
	assert.NoError(t, err, "current session survives")
	_, err = f.service.Authenticate(ctx, other.AccessToken)
	assert.ErrorIs(t, err, application.ErrSessionRevoked)

	_, err = f.service.Login(ctx, application.LoginParams{Email: "ada@example.com", Password: "battery-staple"})
	assert.NoError(t, err)
}

func TestAuthService_DropsSessionsOnUserDeleted(t *testing.T) {
	f := newAuthFixture(t)
	res := f.registerAndLogin(t)
	ctx := context.Background()

	bus := eventbus.NewBus(logger.Nop{})
	f.service.RegisterSubscribers(bus)
	bus.Publish(ctx, eventbus.Event{
		Topic:   events.UserDeletedTopic,
		Payload: events.UserDeletedEvent{UserID: res.User.ID},
	})
	require.NoError(t, bus.Wait(ctx))

	_, err := f.sessions.FindByID(ctx, res.SessionID)
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}
