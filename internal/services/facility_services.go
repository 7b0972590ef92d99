package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"
)

// FacilityStore is the persistence surface FacilityService needs.
// Implemented by repository.FacilityRepository.
type FacilityStore interface {
	Create(ctx context.Context, f *model.Facility) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Facility, error)
	List(ctx context.Context) ([]model.Facility, error)
	Search(ctx context.Context, keyword string) ([]model.Facility, error)
	Update(ctx context.Context, f *model.Facility) error
	Delete(ctx context.Context, id int64) error
}

type FacilityService struct {
	Repo    FacilityStore
	Uploads *UploadStore
}

func NewFacilityService(r FacilityStore, uploads *UploadStore) *FacilityService {
	return &FacilityService{Repo: r, Uploads: uploads}
}

// Create persists a facility with an optionally uploaded image. A nil
// content reader means no image was attached.
func (s *FacilityService) Create(ctx context.Context, name string, description *string, filename string, content io.Reader) (*model.Facility, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}
	f := &model.Facility{
		Name:        strings.TrimSpace(name),
		Description: description,
	}
	if content != nil {
		url, err := s.Uploads.Save("facilities", filename, content)
		if err != nil {
			return nil, err
		}
		f.ImageURL = &url
	}
	id, err := s.Repo.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *FacilityService) Get(ctx context.Context, id int64) (*model.Facility, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *FacilityService) List(ctx context.Context) ([]model.Facility, error) {
	return s.Repo.List(ctx)
}

func (s *FacilityService) Search(ctx context.Context, keyword string) ([]model.Facility, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.Repo.List(ctx)
	}
	return s.Repo.Search(ctx, strings.TrimSpace(keyword))
}

// Update applies non-empty fields; a new image replaces the stored one.
func (s *FacilityService) Update(ctx context.Context, id int64, name string, description *string, filename string, content io.Reader) (*model.Facility, error) {
	f, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) != "" {
		f.Name = strings.TrimSpace(name)
	}
	if description != nil {
		f.Description = description
	}
	if content != nil {
		if f.ImageURL != nil {
			_ = s.Uploads.Delete(*f.ImageURL)
		}
		url, err := s.Uploads.Save("facilities", filename, content)
		if err != nil {
			return nil, err
		}
		f.ImageURL = &url
	}
	if err := s.Repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes the facility and its stored image.
func (s *FacilityService) Delete(ctx context.Context, id int64) error {
	f, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f.ImageURL != nil {
		// best effort; a stale file is not worth failing the delete
		_ = s.Uploads.Delete(*f.ImageURL)
	}
	return s.Repo.Delete(ctx, id)
}
