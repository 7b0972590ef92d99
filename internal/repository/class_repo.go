package repository

import (
	"context"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ClassScheduleRepository struct {
	DB *pgxpool.Pool
}

func NewClassScheduleRepository(db *pgxpool.Pool) *ClassScheduleRepository {
	return &ClassScheduleRepository{DB: db}
}

const classCols = `classid, subject, teacher, description, schedule_time, is_live, created_at`

func scanClass(row interface{ Scan(...any) error }) (*model.ClassSchedule, error) {
	var cs model.ClassSchedule
	if err := row.Scan(&cs.ClassID, &cs.Subject, &cs.Teacher, &cs.Description, &cs.ScheduleTime, &cs.IsLive, &cs.CreatedAt); err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *ClassScheduleRepository) Create(ctx context.Context, cs *model.ClassSchedule) (int64, error) {
	var id int64
	query := `INSERT INTO classes (subject, teacher, description, schedule_time, is_live, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING classid`
	if err := r.DB.QueryRow(ctx, query, cs.Subject, cs.Teacher, cs.Description, cs.ScheduleTime, cs.IsLive, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ClassScheduleRepository) GetByID(ctx context.Context, id int64) (*model.ClassSchedule, error) {
	query := `SELECT ` + classCols + ` FROM classes WHERE classid=$1`
	cs, err := scanClass(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return cs, nil
}

func (r *ClassScheduleRepository) list(ctx context.Context, query string, args ...any) ([]model.ClassSchedule, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ClassSchedule
	for rows.Next() {
		cs, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *cs)
	}
	return out, rows.Err()
}

func (r *ClassScheduleRepository) List(ctx context.Context) ([]model.ClassSchedule, error) {
	return r.list(ctx, `SELECT `+classCols+` FROM classes ORDER BY schedule_time`)
}

func (r *ClassScheduleRepository) ListLive(ctx context.Context) ([]model.ClassSchedule, error) {
	return r.list(ctx, `SELECT `+classCols+` FROM classes WHERE is_live ORDER BY schedule_time`)
}

// ListUpcoming returns classes scheduled after the given instant.
func (r *ClassScheduleRepository) ListUpcoming(ctx context.Context, after time.Time) ([]model.ClassSchedule, error) {
	return r.list(ctx, `SELECT `+classCols+` FROM classes WHERE schedule_time > $1 ORDER BY schedule_time`, after)
}

func (r *ClassScheduleRepository) Update(ctx context.Context, cs *model.ClassSchedule) error {
	query := `UPDATE classes SET subject=$1, teacher=$2, description=$3, schedule_time=$4, is_live=$5 WHERE classid=$6`
	tag, err := r.DB.Exec(ctx, query, cs.Subject, cs.Teacher, cs.Description, cs.ScheduleTime, cs.IsLive, cs.ClassID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClassScheduleRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM classes WHERE classid=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
