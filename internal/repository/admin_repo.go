package repository

import (
	"context"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	DB *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{DB: db}
}

// Create inserts a new admin and returns the created adminid
func (r *AdminRepository) Create(ctx context.Context, username, email, passwordHash string, role model.Role) (int64, error) {
	var id int64
	query := `INSERT INTO admins (username, email, passwordhash, role, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING adminid`
	if err := r.DB.QueryRow(ctx, query, username, email, passwordHash, role, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	var a model.Admin
	query := `SELECT adminid, username, email, passwordhash, role, created_at FROM admins WHERE adminid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&a.AdminID, &a.Username, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	query := `SELECT adminid, username, email, passwordhash, role, created_at FROM admins WHERE username=$1`
	if err := r.DB.QueryRow(ctx, query, username).Scan(&a.AdminID, &a.Username, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	query := `SELECT adminid, username, email, passwordhash, role, created_at FROM admins WHERE email=$1`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&a.AdminID, &a.Username, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &a, nil
}

// ListByRole returns admins with the given role, oldest first.
func (r *AdminRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Admin, error) {
	query := `SELECT adminid, username, email, passwordhash, role, created_at FROM admins WHERE role=$1 ORDER BY adminid`
	rows, err := r.DB.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Admin
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.AdminID, &a.Username, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AdminRepository) List(ctx context.Context) ([]model.Admin, error) {
	query := `SELECT adminid, username, email, passwordhash, role, created_at FROM admins ORDER BY adminid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Admin
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.AdminID, &a.Username, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AdminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM admins WHERE username=$1)`
	if err := r.DB.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM admins WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateCredentials rewrites username, email, password hash and role in place.
func (r *AdminRepository) UpdateCredentials(ctx context.Context, id int64, username, email, passwordHash string, role model.Role) error {
	query := `UPDATE admins SET username=$1, email=$2, passwordhash=$3, role=$4 WHERE adminid=$5`
	tag, err := r.DB.Exec(ctx, query, username, email, passwordHash, role, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM admins WHERE adminid=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
