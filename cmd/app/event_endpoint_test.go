package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/middleware"
	"github.com/Visithrand/infant-jesus-dvk/internal/model"
	"github.com/Visithrand/infant-jesus-dvk/internal/repository"
	"github.com/Visithrand/infant-jesus-dvk/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memEventStore struct {
	nextID int64
	events map[int64]model.Event
}

func newMemEventStore() *memEventStore {
	return &memEventStore{nextID: 1, events: make(map[int64]model.Event)}
}

func (m *memEventStore) Create(_ context.Context, e *model.Event) (int64, error) {
	id := m.nextID
	m.nextID++
	e.EventID = id
	m.events[id] = *e
	return id, nil
}

func (m *memEventStore) GetByID(_ context.Context, id int64) (*model.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (m *memEventStore) List(_ context.Context) ([]model.Event, error) {
	out := make([]model.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })
	return out, nil
}

func (m *memEventStore) Update(_ context.Context, e *model.Event) error {
	if _, ok := m.events[e.EventID]; !ok {
		return repository.ErrNotFound
	}
	m.events[e.EventID] = *e
	return nil
}

func (m *memEventStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

// newEventTestApp mirrors the production wiring: static /uploads at the
// root, API routes under /api.
func newEventTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	uploads, err := services.NewUploadStore(t.TempDir())
	require.NoError(t, err)
	svc := services.NewEventService(newMemEventStore(), uploads)

	tokens := middleware.NewTokenService("test-secret", time.Hour)

	e := echo.New()
	e.Use(tokens.AuthContext())
	e.Static("/uploads", uploads.Dir())
	api := e.Group("/api")
	registerEventRoutes(api, svc)
	return e
}

func TestParseEventTime(t *testing.T) {
	t.Parallel()

	got, err := parseEventTime("2026-09-15T10:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)))

	got, err = parseEventTime("2026-09-15T10:00:00+05:30")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	// local date-time without an offset, as the site's forms submit
	got, err = parseEventTime("2026-09-15T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.Local), got)

	_, err = parseEventTime("next tuesday")
	assert.Error(t, err)
}

func TestEventUploadServesStoredImageURL(t *testing.T) {
	e := newEventTestApp(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Sports Day"))
	require.NoError(t, mw.WriteField("eventDateTime", "2026-09-15T10:00:00"))
	part, err := mw.CreateFormFile("image", "banner.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/events/upload", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		EventID  int64  `json:"eventId"`
		Title    string `json:"title"`
		ImageURL string `json:"imageUrl"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.EventID)
	require.NotEmpty(t, resp.ImageURL)

	// the stored public URL must be reachable as-is
	getReq := httptest.NewRequest(http.MethodGet, resp.ImageURL, nil)
	getRec := httptest.NewRecorder()
	e.ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code, "stored image URL %s must be served", resp.ImageURL)
	assert.Equal(t, "image-bytes", getRec.Body.String())
}

func TestEventJSONWireNames(t *testing.T) {
	e := newEventTestApp(t)

	rec := doJSON(e, http.MethodPost, "/api/events", `{"title":"Annual Day","eventDateTime":"2026-11-01T09:00:00Z"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "eventId")
	assert.Contains(t, resp, "eventDateTime")
	assert.NotContains(t, resp, "event_date_time")
	assert.Equal(t, "2026-11-01T09:00:00Z", resp["eventDateTime"])
}
