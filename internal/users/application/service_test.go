package application_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/platform/apperror"
	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/events"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/ravosoft/photohub/backend/internal/platform/ownership"
	"github.com/ravosoft/photohub/backend/internal/platform/password"
	"github.com/ravosoft/photohub/backend/internal/users/application"
	"github.com/ravosoft/photohub/backend/internal/users/domain"
	"github.com/ravosoft/photohub/backend/internal/users/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[uuid.UUID]domain.User)}
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ports.ErrUserNotFound
	}
	return &u, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ports.ErrUserNotFound
}

func (m *memoryUsers) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return ports.ErrUserNotFound
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUsers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ports.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

func (m *memoryUsers) ClearAvatar(_ context.Context, imageID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.AvatarImageID != nil && *u.AvatarImageID == imageID {
			u.AvatarImageID = nil
			m.users[id] = u
		}
	}
	return nil
}

type fixture struct {
	repo     *memoryUsers
	registry *ownership.DefaultRegistry
	bus      *eventbus.Bus
	service  *application.UserService
	user     *domain.User
	owned    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hasher := password.NewHasherWithCost(4)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	user, err := domain.NewUser("ada@example.com", "ada", hash)
	require.NoError(t, err)

	repo := newMemoryUsers()
	require.NoError(t, repo.Create(context.Background(), user))

	owned := uuid.New()
	registry := ownership.NewRegistry()
	registry.RegisterChecker(ownership.ResourceImages, ownership.CheckerFunc(
		func(_ context.Context, userID, resourceID uuid.UUID) (bool, error) {
			return userID == user.ID && resourceID == owned, nil
		},
	))

	bus := eventbus.NewBus(logger.Nop{})
	svc := application.NewUserService(repo, registry, hasher, bus, logger.Nop{})
	return &fixture{repo: repo, registry: registry, bus: bus, service: svc, user: user, owned: owned}
}

func strPtr(s string) *string { return &s }

func TestUserService_GetProfile(t *testing.T) {
	f := newFixture(t)

	got, err := f.service.GetProfile(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)

	_, err = f.service.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name        string
		params      application.UpdateProfileParams
		wantErr     bool
		wantDisplay string
		wantBio     string
	}{
		{
			name:        "sets display name and bio",
			params:      application.UpdateProfileParams{DisplayName: strPtr("Ada L."), Bio: strPtr("mathematician")},
			wantDisplay: "Ada L.",
			wantBio:     "mathematician",
		},
		{
			name:        "strips markup",
			params:      application.UpdateProfileParams{DisplayName: strPtr("<b>Ada</b>")},
			wantDisplay: "Ada",
		},
		{
			name:    "rejects oversized bio",
			params:  application.UpdateProfileParams{Bio: strPtr(strings.Repeat("x", domain.MaxBioLength+1))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			got, err := f.service.UpdateProfile(context.Background(), f.user.ID, tt.params)
			if tt.wantErr {
				appErr, ok := apperror.As(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeValidationFailed, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDisplay, got.DisplayName)
			assert.Equal(t, tt.wantBio, got.Bio)
		})
	}
}

func TestUserService_SetAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.service.SetAvatar(ctx, f.user.ID, f.owned)
	require.NoError(t, err)
	require.NotNil(t, got.AvatarImageID)
	assert.Equal(t, f.owned, *got.AvatarImageID)

	_, err = f.service.SetAvatar(ctx, f.user.ID, uuid.New())
	assert.ErrorIs(t, err, application.ErrAvatarNotFound)

	got, err = f.service.ClearAvatar(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AvatarImageID)
}

func TestUserService_DeleteAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	deleted := make(chan uuid.UUID, 1)
	f.bus.Subscribe(events.UserDeletedTopic, func(_ context.Context, e eventbus.Event) error {
		deleted <- e.Payload.(events.UserDeletedEvent).UserID
		return nil
	})

	err := f.service.DeleteAccount(ctx, f.user.ID, "wrong-password")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	require.NoError(t, f.service.DeleteAccount(ctx, f.user.ID, "correct-horse"))

	select {
	case id := <-deleted:
		assert.Equal(t, f.user.ID, id)
	case <-time.After(time.Second):
		t.Fatal("users.deleted was not published")
	}

	_, err = f.service.GetProfile(ctx, f.user.ID)
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestUserService_ClearsAvatarOnImageDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.service.RegisterSubscribers(f.bus)

	_, err := f.service.SetAvatar(ctx, f.user.ID, f.owned)
	require.NoError(t, err)

	f.bus.Publish(ctx, eventbus.Event{
		Topic:   events.ImageDeletedTopic,
		Payload: events.ImageDeletedEvent{ImageID: f.owned, OwnerID: f.user.ID},
	})
	require.NoError(t, f.bus.Wait(ctx))

	got, err := f.service.GetProfile(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AvatarImageID)
}
