package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"
)

// AnnouncementStore is the persistence surface AnnouncementService needs.
// Implemented by repository.AnnouncementRepository.
type AnnouncementStore interface {
	Create(ctx context.Context, a *model.Announcement) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Announcement, error)
	ListAll(ctx context.Context) ([]model.Announcement, error)
	ListActive(ctx context.Context) ([]model.Announcement, error)
	ListByPriority(ctx context.Context, priority string) ([]model.Announcement, error)
	Search(ctx context.Context, keyword string) ([]model.Announcement, error)
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id int64) error
}

type AnnouncementService struct {
	Repo AnnouncementStore
}

func NewAnnouncementService(r AnnouncementStore) *AnnouncementService {
	return &AnnouncementService{Repo: r}
}

type AnnouncementInput struct {
	Title    string  `json:"title"`
	Message  string  `json:"message"`
	Priority *string `json:"priority"`
	IsActive *bool   `json:"isActive"`
}

func (s *AnnouncementService) Create(ctx context.Context, in AnnouncementInput) (*model.Announcement, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("title is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, errors.New("message is required")
	}
	a := &model.Announcement{
		Title:    strings.TrimSpace(in.Title),
		Message:  in.Message,
		Priority: "NORMAL",
		IsActive: true,
	}
	if in.Priority != nil {
		a.Priority = *in.Priority
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	id, err := s.Repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *AnnouncementService) Get(ctx context.Context, id int64) (*model.Announcement, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *AnnouncementService) ListAll(ctx context.Context) ([]model.Announcement, error) {
	return s.Repo.ListAll(ctx)
}

func (s *AnnouncementService) ListActive(ctx context.Context) ([]model.Announcement, error) {
	return s.Repo.ListActive(ctx)
}

func (s *AnnouncementService) ListByPriority(ctx context.Context, priority string) ([]model.Announcement, error) {
	return s.Repo.ListByPriority(ctx, priority)
}

func (s *AnnouncementService) Search(ctx context.Context, keyword string) ([]model.Announcement, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.Repo.ListAll(ctx)
	}
	return s.Repo.Search(ctx, strings.TrimSpace(keyword))
}

// Update applies the non-empty/non-nil fields; omitted fields keep their
// stored values.
func (s *AnnouncementService) Update(ctx context.Context, id int64, in AnnouncementInput) (*model.Announcement, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) != "" {
		a.Title = strings.TrimSpace(in.Title)
	}
	if strings.TrimSpace(in.Message) != "" {
		a.Message = in.Message
	}
	if in.Priority != nil {
		a.Priority = *in.Priority
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

// ToggleActive flips the active flag and returns the updated row.
func (s *AnnouncementService) ToggleActive(ctx context.Context, id int64) (*model.Announcement, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.IsActive = !a.IsActive
	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}
