package application_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/albums/application"
	"github.com/ravosoft/photohub/backend/internal/albums/domain"
	"github.com/ravosoft/photohub/backend/internal/albums/ports"
	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/events"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/ravosoft/photohub/backend/internal/platform/ownership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type link struct {
	imageID  uuid.UUID
	position int
}

type memoryAlbums struct {
	mu     sync.Mutex
	albums map[uuid.UUID]domain.Album
	links  map[uuid.UUID][]link
}

func newMemoryAlbums() *memoryAlbums {
	return &memoryAlbums{albums: make(map[uuid.UUID]domain.Album), links: make(map[uuid.UUID][]link)}
}

func (m *memoryAlbums) Create(_ context.Context, a *domain.Album) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.albums {
		if existing.OwnerID == a.OwnerID && existing.Slug == a.Slug {
			return ports.ErrSlugTaken
		}
	}
	m.albums[a.ID] = *a
	return nil
}

func (m *memoryAlbums) FindByID(_ context.Context, id uuid.UUID) (*domain.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.albums[id]
	if !ok {
		return nil, ports.ErrAlbumNotFound
	}
	a.ImageCount = int64(len(m.links[id]))
	return &a, nil
}

func (m *memoryAlbums) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Album
	for _, a := range m.albums {
		if a.OwnerID == ownerID {
			a.ImageCount = int64(len(m.links[a.ID]))
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryAlbums) Update(_ context.Context, a *domain.Album) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.albums[a.ID]; !ok {
		return ports.ErrAlbumNotFound
	}
	m.albums[a.ID] = *a
	return nil
}

func (m *memoryAlbums) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.albums[id]; !ok {
		return ports.ErrAlbumNotFound
	}
	delete(m.albums, id)
	delete(m.links, id)
	return nil
}

func (m *memoryAlbums) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.albums {
		if a.OwnerID == ownerID {
			delete(m.albums, id)
			delete(m.links, id)
		}
	}
	return nil
}

func (m *memoryAlbums) SlugExists(_ context.Context, ownerID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.albums {
		if a.OwnerID == ownerID && a.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryAlbums) OwnerOf(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.albums[id]
	if !ok {
		return uuid.Nil, ports.ErrAlbumNotFound
	}
	return a.OwnerID, nil
}

func (m *memoryAlbums) LinkedImageIDs(_ context.Context, albumID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []uuid.UUID
	for _, l := range m.links[albumID] {
		for _, id := range ids {
			if l.imageID == id {
				out = append(out, id)
			}
		}
	}
	return out, nil
}

func (m *memoryAlbums) AppendImages(_ context.Context, albumID uuid.UUID, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos := 0
	for _, l := range m.links[albumID] {
		pos = max(pos, l.position)
	}
	for _, id := range ids {
		pos++
		m.links[albumID] = append(m.links[albumID], link{imageID: id, position: pos})
	}
	return nil
}

func (m *memoryAlbums) RemoveImage(_ context.Context, albumID, imageID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	links := m.links[albumID]
	for i, l := range links {
		if l.imageID == imageID {
			m.links[albumID] = append(links[:i:i], links[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryAlbums) FirstImage(_ context.Context, albumID uuid.UUID) (*uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var first *link
	for i := range m.links[albumID] {
		l := m.links[albumID][i]
		if first == nil || l.position < first.position {
			first = &l
		}
	}
	if first == nil {
		return nil, nil
	}
	return &first.imageID, nil
}

func (m *memoryAlbums) HasImage(ctx context.Context, albumID, imageID uuid.UUID) (bool, error) {
	ids, err := m.LinkedImageIDs(ctx, albumID, []uuid.UUID{imageID})
	return len(ids) > 0, err
}

func (m *memoryAlbums) UnlinkImage(ctx context.Context, imageID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	var albumIDs []uuid.UUID
	for albumID := range m.links {
		albumIDs = append(albumIDs, albumID)
	}
	m.mu.Unlock()

	var touched []uuid.UUID
	for _, albumID := range albumIDs {
		removed, _ := m.RemoveImage(ctx, albumID, imageID)
		if removed {
			touched = append(touched, albumID)
		}
	}
	return touched, nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type albumFixture struct {
	service *application.AlbumService
	repo    *memoryAlbums
	owner   uuid.UUID
	images  []uuid.UUID
}

func newAlbumFixture(t *testing.T) *albumFixture {
	t.Helper()
	f := &albumFixture{
		repo:   newMemoryAlbums(),
		owner:  uuid.New(),
		images: []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
	}

	registry := ownership.NewRegistry()
	registry.RegisterChecker(ownership.ResourceImages, ownership.CheckerFunc(
		func(_ context.Context, userID, imageID uuid.UUID) (bool, error) {
			if userID != f.owner {
				return false, nil
			}
			for _, id := range f.images {
				if id == imageID {
					return true, nil
				}
			}
			return false, nil
		},
	))

	f.service = application.NewAlbumService(f.repo, registry, passthroughTx{}, logger.Nop{})
	f.service.RegisterOwnership(registry)
	return f
}

func (f *albumFixture) create(t *testing.T, name string) *domain.Album {
	t.Helper()
	album, err := f.service.Create(context.Background(), f.owner, application.CreateParams{Name: name})
	require.NoError(t, err)
	return album
}

func TestAlbumService_CreateAssignsUniqueSlugs(t *testing.T) {
	f := newAlbumFixture(t)

	assert.Equal(t, "holiday", f.create(t, "Holiday").Slug)
	assert.Equal(t, "holiday-2", f.create(t, "holiday").Slug)
	assert.Equal(t, "holiday-3", f.create(t, "HOLIDAY!").Slug)

	other, err := f.service.Create(context.Background(), uuid.New(), application.CreateParams{Name: "Holiday"})
	require.NoError(t, err)
	assert.Equal(t, "holiday", other.Slug, "slugs are unique per owner only")
}

func TestAlbumService_CreateValidation(t *testing.T) {
	f := newAlbumFixture(t)

	_, err := f.service.Create(context.Background(), f.owner, application.CreateParams{Name: "<p></p>"})
	assert.ErrorIs(t, err, application.ErrInvalidAlbumName)
}

func TestAlbumService_UpdateRenamesSlug(t *testing.T) {
	f := newAlbumFixture(t)
	ctx := context.Background()
	f.create(t, "Beach")
	album := f.create(t, "Mountains")

	name := "Beach"
	updated, err := f.service.Update(ctx, f.owner, album.ID, application.UpdateParams{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "beach-2", updated.Slug)

	desc := "windy"
	updated, err = f.service.Update(ctx, f.owner, album.ID, application.UpdateParams{Name: &name, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "beach-2", updated.Slug, "same name keeps slug")
	assert.Equal(t, "windy", updated.Description)
}

func TestAlbumService_OwnerScoping(t *testing.T) {
	f := newAlbumFixture(t)
	ctx := context.Background()
	album := f.create(t, "Private")
	stranger := uuid.New()

	_, err := f.service.Get(ctx, stranger, album.ID)
	assert.ErrorIs(t, err, application.ErrAlbumNotFound)
	assert.ErrorIs(t, f.service.Delete(ctx, stranger, album.ID), application.ErrAlbumNotFound)

	owned, err := f.service.CheckOwnership(ctx, f.owner, album.ID)
	require.NoError(t, err)
	assert.True(t, owned)
	owned, err = f.service.CheckOwnership(ctx, f.owner, uuid.New())
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestAlbumService_AddImages(t *testing.T) {
	f := newAlbumFixture(t)
	ctx := context.Background()
	album := f.create(t, "Trip")
	a, b, c := f.images[0], f.images[1], f.images[2]

	got, err := f.service.AddImages(ctx, f.owner, album.ID, []uuid.UUID{b, a, b})
	require.NoError(t, err)
	require.NotNil(t, got.CoverImageID)
	assert.Equal(t, b, *got.CoverImageID, "first appended image becomes cover")
	assert.EqualValues(t, 2, got.ImageCount)

	got, err = f.service.AddImages(ctx, f.owner, album.ID, []uuid.UUID{a, c})
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.ImageCount, "already present images are skipped")
	assert.Equal(t, b, *got.CoverImageID)

	_, err = f.service.AddImages(ctx, f.owner, album.ID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, application.ErrImageNotFound)

	_, err = f.service.AddImages(ctx, f.owner, album.ID, nil)
	assert.ErrorIs(t, err, application.ErrNoImages)
}

func TestAlbumService_RemoveImageReassignsCover(t *testing.T) {
	f := newAlbumFixture(t)
	ctx := context.Background()
	album := f.create(t, "Trip")
	a, b := f.images[0], f.images[1]
	_, err := f.service.AddImages(ctx, f.owner, album.ID, []uuid.UUID{a, b})
	require.NoError(t, err)

	got, err := f.service.RemoveImage(ctx, f.owner, album.ID, a)
	require.NoError(t, err)
	require.NotNil(t, got.CoverImageID)
	assert.Equal(t, b, *got.CoverImageID)

	got, err = f.service.RemoveImage(ctx, f.owner, album.ID, b)
	require.NoError(t, err)
	assert.Nil(t, got.CoverImageID)

	_, err = f.service.RemoveImage(ctx, f.owner, album.ID, b)
	assert.ErrorIs(t, err, application.ErrImageNotInAlbum)
}

func TestAlbumService_SetCover(t *testing.T) {
	f := newAlbumFixture(t)
	ctx := context.Background()
	album := f.create(t, "Trip")
	a, b := f.images[0], f.images[1]
	_, err := f.service.AddImages(ctx, f.owner, album.ID, []uuid.UUID{a, b})
	require.NoError(t, err)

	got, err := f.service.SetCover(ctx, f.owner, album.ID, b)
	require.NoError(t, err)
	assert.Equal(t, b, *got.CoverImageID)

	_, err = f.service.SetCover(ctx, f.owner, album.ID, f.images[2])
	assert.ErrorIs(t, err, application.ErrCoverNotInAlbum)
}

func TestAlbumService_ReactsToEvents(t *testing.T) {
	f := newAlbumFixture(t)
	ctx := context.Background()
	bus := eventbus.NewBus(logger.Nop{})
	f.service.RegisterSubscribers(bus)

	first := f.create(t, "First")
	second := f.create(t, "Second")
	a, b := f.images[0], f.images[1]
	_, err := f.service.AddImages(ctx, f.owner, first.ID, []uuid.UUID{a, b})
	require.NoError(t, err)
	_, err = f.service.AddImages(ctx, f.owner, second.ID, []uuid.UUID{b, a})
	require.NoError(t, err)

	bus.Publish(ctx, eventbus.Event{Topic: events.ImageDeletedTopic, Payload: events.ImageDeletedEvent{ImageID: a, OwnerID: f.owner}})
	require.NoError(t, bus.Wait(ctx))

	got, err := f.service.Get(ctx, f.owner, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ImageCount)
	assert.Equal(t, b, *got.CoverImageID)

	got, err = f.service.Get(ctx, f.owner, second.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ImageCount)
	assert.Equal(t, b, *got.CoverImageID, "unrelated cover untouched")

	bus.Publish(ctx, eventbus.Event{Topic: events.UserDeletedTopic, Payload: events.UserDeletedEvent{UserID: f.owner}})
	require.NoError(t, bus.Wait(ctx))

	albums, err := f.service.List(ctx, f.owner)
	require.NoError(t, err)
	assert.Empty(t, albums)
}
