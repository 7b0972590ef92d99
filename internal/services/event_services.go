package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"
	"github.com/Visithrand/infant-jesus-dvk/internal/repository"
)

// EventStore is the persistence surface EventService needs. Implemented by
// repository.EventRepository.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id int64) error
}

type EventService struct {
	Repo    EventStore
	Uploads *UploadStore
}

func NewEventService(r EventStore, uploads *UploadStore) *EventService {
	return &EventService{Repo: r, Uploads: uploads}
}

type EventInput struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	ImageURL      *string    `json:"imageUrl"`
	EventDateTime *time.Time `json:"eventDateTime"`
}

func (s *EventService) Create(ctx context.Context, in EventInput) (*model.Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("title is required")
	}
	when := time.Now()
	if in.EventDateTime != nil {
		when = *in.EventDateTime
	}
	e := &model.Event{
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		EventDateTime: when,
	}
	id, err := s.Repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

// CreateWithImage persists the event along with an optionally uploaded
// image. A nil content reader means no image was attached.
func (s *EventService) CreateWithImage(ctx context.Context, in EventInput, filename string, content io.Reader) (*model.Event, error) {
	if content != nil {
		url, err := s.Uploads.Save("events", filename, content)
		if err != nil {
			return nil, err
		}
		in.ImageURL = &url
	}
	return s.Create(ctx, in)
}

func (s *EventService) Get(ctx context.Context, id int64) (*model.Event, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	return s.Repo.List(ctx)
}

// Update applies the non-nil fields of the input; omitted fields keep
// their stored values.
func (s *EventService) Update(ctx context.Context, id int64, in EventInput) (*model.Event, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) != "" {
		e.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != nil {
		e.Description = in.Description
	}
	if in.ImageURL != nil {
		e.ImageURL = in.ImageURL
	}
	if in.EventDateTime != nil {
		e.EventDateTime = *in.EventDateTime
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the event and its stored image. Deleting a missing event
// succeeds; the operation is idempotent.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if e.ImageURL != nil {
		// best effort; a stale file is not worth failing the delete
		_ = s.Uploads.Delete(*e.ImageURL)
	}
	if err := s.Repo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}
