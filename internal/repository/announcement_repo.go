package repository

import (
	"context"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnnouncementRepository struct {
	DB *pgxpool.Pool
}

func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{DB: db}
}

const announcementCols = `announcementid, title, message, priority, is_active, created_at, updated_at`

func scanAnnouncement(row interface{ Scan(...any) error }) (*model.Announcement, error) {
	var a model.Announcement
	if err := row.Scan(&a.AnnouncementID, &a.Title, &a.Message, &a.Priority, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) (int64, error) {
	var id int64
	now := time.Now()
	query := `INSERT INTO announcements (title, message, priority, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $5) RETURNING announcementid`
	if err := r.DB.QueryRow(ctx, query, a.Title, a.Message, a.Priority, a.IsActive, now).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	query := `SELECT ` + announcementCols + ` FROM announcements WHERE announcementid=$1`
	a, err := scanAnnouncement(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (r *AnnouncementRepository) list(ctx context.Context, query string, args ...any) ([]model.Announcement, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// ListAll returns every announcement, latest created first.
func (r *AnnouncementRepository) ListAll(ctx context.Context) ([]model.Announcement, error) {
	return r.list(ctx, `SELECT `+announcementCols+` FROM announcements ORDER BY created_at DESC`)
}

// ListActive returns active announcements only, latest created first.
func (r *AnnouncementRepository) ListActive(ctx context.Context) ([]model.Announcement, error) {
	return r.list(ctx, `SELECT `+announcementCols+` FROM announcements WHERE is_active ORDER BY created_at DESC`)
}

func (r *AnnouncementRepository) ListByPriority(ctx context.Context, priority string) ([]model.Announcement, error) {
	return r.list(ctx, `SELECT `+announcementCols+` FROM announcements WHERE priority=$1 ORDER BY created_at DESC`, priority)
}

// Search matches the keyword against title and message, case-insensitively.
func (r *AnnouncementRepository) Search(ctx context.Context, keyword string) ([]model.Announcement, error) {
	pattern := "%" + keyword + "%"
	return r.list(ctx, `SELECT `+announcementCols+` FROM announcements WHERE title ILIKE $1 OR message ILIKE $1 ORDER BY created_at DESC`, pattern)
}

func (r *AnnouncementRepository) Update(ctx context.Context, a *model.Announcement) error {
	query := `UPDATE announcements SET title=$1, message=$2, priority=$3, is_active=$4, updated_at=$5 WHERE announcementid=$6`
	tag, err := r.DB.Exec(ctx, query, a.Title, a.Message, a.Priority, a.IsActive, time.Now(), a.AnnouncementID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM announcements WHERE announcementid=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
