package services

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"
	"github.com/Visithrand/infant-jesus-dvk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnnouncementStore struct {
	nextID int64
	rows   map[int64]model.Announcement
}

func newFakeAnnouncementStore() *fakeAnnouncementStore {
	return &fakeAnnouncementStore{nextID: 1, rows: make(map[int64]model.Announcement)}
}

func (f *fakeAnnouncementStore) Create(_ context.Context, a *model.Announcement) (int64, error) {
	id := f.nextID
	f.nextID++
	a.AnnouncementID = id
	f.rows[id] = *a
	return id, nil
}

func (f *fakeAnnouncementStore) GetByID(_ context.Context, id int64) (*model.Announcement, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAnnouncementStore) ListAll(_ context.Context) ([]model.Announcement, error) {
	return f.filter(func(model.Announcement) bool { return true }), nil
}

func (f *fakeAnnouncementStore) ListActive(_ context.Context) ([]model.Announcement, error) {
	return f.filter(func(a model.Announcement) bool { return a.IsActive }), nil
}

func (f *fakeAnnouncementStore) ListByPriority(_ context.Context, priority string) ([]model.Announcement, error) {
	return f.filter(func(a model.Announcement) bool { return a.Priority == priority }), nil
}

func (f *fakeAnnouncementStore) Search(_ context.Context, keyword string) ([]model.Announcement, error) {
	kw := strings.ToLower(keyword)
	return f.filter(func(a model.Announcement) bool {
		return strings.Contains(strings.ToLower(a.Title), kw) ||
			strings.Contains(strings.ToLower(a.Message), kw)
	}), nil
}

func (f *fakeAnnouncementStore) Update(_ context.Context, a *model.Announcement) error {
	if _, ok := f.rows[a.AnnouncementID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[a.AnnouncementID] = *a
	return nil
}

func (f *fakeAnnouncementStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAnnouncementStore) filter(keep func(model.Announcement) bool) []model.Announcement {
	var out []model.Announcement
	for _, a := range f.rows {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnnouncementID < out[j].AnnouncementID })
	return out
}

func TestAnnouncementCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewAnnouncementService(newFakeAnnouncementStore())

	t.Run("defaults to NORMAL priority and active", func(t *testing.T) {
		a, err := svc.Create(ctx, AnnouncementInput{Title: "Holiday", Message: "School closed Friday"})
		require.NoError(t, err)
		assert.Equal(t, "NORMAL", a.Priority)
		assert.True(t, a.IsActive)
	})

	t.Run("explicit priority and flag are kept", func(t *testing.T) {
		high := "HIGH"
		off := false
		a, err := svc.Create(ctx, AnnouncementInput{Title: "Exam", Message: "Exams start Monday", Priority: &high, IsActive: &off})
		require.NoError(t, err)
		assert.Equal(t, "HIGH", a.Priority)
		assert.False(t, a.IsActive)
	})

	t.Run("title and message required", func(t *testing.T) {
		_, err := svc.Create(ctx, AnnouncementInput{Message: "no title"})
		assert.Error(t, err)
		_, err = svc.Create(ctx, AnnouncementInput{Title: "no message"})
		assert.Error(t, err)
	})
}

func TestAnnouncementListActive(t *testing.T) {
	ctx := context.Background()
	store := newFakeAnnouncementStore()
	svc := NewAnnouncementService(store)

	off := false
	_, err := svc.Create(ctx, AnnouncementInput{Title: "Visible", Message: "m"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, AnnouncementInput{Title: "Hidden", Message: "m", IsActive: &off})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Visible", active[0].Title)
}

func TestAnnouncementSearch_EmptyKeywordListsAll(t *testing.T) {
	ctx := context.Background()
	store := newFakeAnnouncementStore()
	svc := NewAnnouncementService(store)

	_, err := svc.Create(ctx, AnnouncementInput{Title: "Sports day", Message: "ground"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, AnnouncementInput{Title: "Library", Message: "new books"})
	require.NoError(t, err)

	all, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hits, err := svc.Search(ctx, "sports")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Sports day", hits[0].Title)
}

func TestAnnouncementToggleActive(t *testing.T) {
	ctx := context.Background()
	svc := NewAnnouncementService(newFakeAnnouncementStore())

	a, err := svc.Create(ctx, AnnouncementInput{Title: "Holiday", Message: "m"})
	require.NoError(t, err)
	require.True(t, a.IsActive)

	toggled, err := svc.ToggleActive(ctx, a.AnnouncementID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	again, err := svc.ToggleActive(ctx, a.AnnouncementID)
	require.NoError(t, err)
	assert.True(t, again.IsActive)

	_, err = svc.ToggleActive(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAnnouncementUpdate_PartialFields(t *testing.T) {
	ctx := context.Background()
	svc := NewAnnouncementService(newFakeAnnouncementStore())

	a, err := svc.Create(ctx, AnnouncementInput{Title: "Holiday", Message: "School closed"})
	require.NoError(t, err)

	urgent := "URGENT"
	updated, err := svc.Update(ctx, a.AnnouncementID, AnnouncementInput{Priority: &urgent})
	require.NoError(t, err)
	assert.Equal(t, "Holiday", updated.Title)
	assert.Equal(t, "School closed", updated.Message)
	assert.Equal(t, "URGENT", updated.Priority)
}
