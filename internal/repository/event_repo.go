package repository

import (
	"context"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	DB *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) (int64, error) {
	var id int64
	query := `INSERT INTO events (title, description, image_url, event_date_time, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING eventid`
	if err := r.DB.QueryRow(ctx, query, e.Title, e.Description, e.ImageURL, e.EventDateTime, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	var e model.Event
	query := `SELECT eventid, title, description, image_url, event_date_time, created_at FROM events WHERE eventid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&e.EventID, &e.Title, &e.Description, &e.ImageURL, &e.EventDateTime, &e.CreatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &e, nil
}

// List returns all events, latest created first.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	query := `SELECT eventid, title, description, image_url, event_date_time, created_at FROM events ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.EventID, &e.Title, &e.Description, &e.ImageURL, &e.EventDateTime, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, e *model.Event) error {
	query := `UPDATE events SET title=$1, description=$2, image_url=$3, event_date_time=$4 WHERE eventid=$5`
	tag, err := r.DB.Exec(ctx, query, e.Title, e.Description, e.ImageURL, e.EventDateTime, e.EventID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE eventid=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
