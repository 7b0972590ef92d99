package repository

import (
	"context"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FacilityRepository struct {
	DB *pgxpool.Pool
}

func NewFacilityRepository(db *pgxpool.Pool) *FacilityRepository {
	return &FacilityRepository{DB: db}
}

func (r *FacilityRepository) Create(ctx context.Context, f *model.Facility) (int64, error) {
	var id int64
	query := `INSERT INTO facilities (name, description, image_url, created_at) VALUES ($1, $2, $3, $4) RETURNING facilityid`
	if err := r.DB.QueryRow(ctx, query, f.Name, f.Description, f.ImageURL, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *FacilityRepository) GetByID(ctx context.Context, id int64) (*model.Facility, error) {
	var f model.Facility
	query := `SELECT facilityid, name, description, image_url, created_at FROM facilities WHERE facilityid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&f.FacilityID, &f.Name, &f.Description, &f.ImageURL, &f.CreatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (r *FacilityRepository) list(ctx context.Context, query string, args ...any) ([]model.Facility, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Facility
	for rows.Next() {
		var f model.Facility
		if err := rows.Scan(&f.FacilityID, &f.Name, &f.Description, &f.ImageURL, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// List returns all facilities, latest created first.
func (r *FacilityRepository) List(ctx context.Context) ([]model.Facility, error) {
	return r.list(ctx, `SELECT facilityid, name, description, image_url, created_at FROM facilities ORDER BY created_at DESC`)
}

// Search matches the keyword against name and description, case-insensitively.
func (r *FacilityRepository) Search(ctx context.Context, keyword string) ([]model.Facility, error) {
	pattern := "%" + keyword + "%"
	return r.list(ctx, `SELECT facilityid, name, description, image_url, created_at FROM facilities WHERE name ILIKE $1 OR description ILIKE $1 ORDER BY created_at DESC`, pattern)
}

func (r *FacilityRepository) Update(ctx context.Context, f *model.Facility) error {
	query := `UPDATE facilities SET name=$1, description=$2, image_url=$3 WHERE facilityid=$4`
	tag, err := r.DB.Exec(ctx, query, f.Name, f.Description, f.ImageURL, f.FacilityID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FacilityRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM facilities WHERE facilityid=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
