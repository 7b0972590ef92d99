package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"
)

// ClassScheduleStore is the persistence surface ClassScheduleService needs.
// Implemented by repository.ClassScheduleRepository.
type ClassScheduleStore interface {
	Create(ctx context.Context, cs *model.ClassSchedule) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.ClassSchedule, error)
	List(ctx context.Context) ([]model.ClassSchedule, error)
	ListLive(ctx context.Context) ([]model.ClassSchedule, error)
	ListUpcoming(ctx context.Context, after time.Time) ([]model.ClassSchedule, error)
	Update(ctx context.Context, cs *model.ClassSchedule) error
	Delete(ctx context.Context, id int64) error
}

type ClassScheduleService struct {
	Repo ClassScheduleStore
}

func NewClassScheduleService(r ClassScheduleStore) *ClassScheduleService {
	return &ClassScheduleService{Repo: r}
}

type ClassScheduleInput struct {
	Subject      string     `json:"subject"`
	Teacher      string     `json:"teacher"`
	Description  *string    `json:"description"`
	ScheduleTime *time.Time `json:"scheduleTime"`
	IsLive       *bool      `json:"isLive"`
}

func (s *ClassScheduleService) Create(ctx context.Context, in ClassScheduleInput) (*model.ClassSchedule, error) {
	if strings.TrimSpace(in.Subject) == "" {
		return nil, errors.New("subject is required")
	}
	if strings.TrimSpace(in.Teacher) == "" {
		return nil, errors.New("teacher is required")
	}
	cs := &model.ClassSchedule{
		Subject:      strings.TrimSpace(in.Subject),
		Teacher:      strings.TrimSpace(in.Teacher),
		Description:  in.Description,
		ScheduleTime: time.Now(),
	}
	if in.ScheduleTime != nil {
		cs.ScheduleTime = *in.ScheduleTime
	}
	if in.IsLive != nil {
		cs.IsLive = *in.IsLive
	}
	id, err := s.Repo.Create(ctx, cs)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *ClassScheduleService) Get(ctx context.Context, id int64) (*model.ClassSchedule, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ClassScheduleService) List(ctx context.Context) ([]model.ClassSchedule, error) {
	return s.Repo.List(ctx)
}

func (s *ClassScheduleService) ListLive(ctx context.Context) ([]model.ClassSchedule, error) {
	return s.Repo.ListLive(ctx)
}

func (s *ClassScheduleService) ListUpcoming(ctx context.Context) ([]model.ClassSchedule, error) {
	return s.Repo.ListUpcoming(ctx, time.Now())
}

// Update applies the non-empty/non-nil fields; omitted fields keep their
// stored values.
func (s *ClassScheduleService) Update(ctx context.Context, id int64, in ClassScheduleInput) (*model.ClassSchedule, error) {
	cs, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Subject) != "" {
		cs.Subject = strings.TrimSpace(in.Subject)
	}
	if strings.TrimSpace(in.Teacher) != "" {
		cs.Teacher = strings.TrimSpace(in.Teacher)
	}
	if in.Description != nil {
		cs.Description = in.Description
	}
	if in.ScheduleTime != nil {
		cs.ScheduleTime = *in.ScheduleTime
	}
	if in.IsLive != nil {
		cs.IsLive = *in.IsLive
	}
	if err := s.Repo.Update(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// ToggleLive flips the live flag and returns the updated row.
func (s *ClassScheduleService) ToggleLive(ctx context.Context, id int64) (*model.ClassSchedule, error) {
	cs, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cs.IsLive = !cs.IsLive
	if err := s.Repo.Update(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *ClassScheduleService) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}
