package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence surface UserService needs. Implemented by
// repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string, role model.Role) (int64, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type UserService struct {
	Users UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{Users: store}
}

type UserRegistration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates a regular user account. Registration through this path
// always yields the USER role.
func (s *UserService) Register(ctx context.Context, reg UserRegistration) (int64, error) {
	if strings.TrimSpace(reg.Username) == "" {
		return 0, errors.New("username is required")
	}
	if strings.TrimSpace(reg.Email) == "" {
		return 0, errors.New("email is required")
	}
	if strings.TrimSpace(reg.Password) == "" {
		return 0, errors.New("password is required")
	}
	if reg.Password != reg.ConfirmPassword {
		return 0, errors.New("passwords do not match")
	}
	if len(reg.Password) < MinPasswordLen {
		return 0, errors.New("password must be at least 6 characters long")
	}

	username := strings.TrimSpace(reg.Username)
	email := strings.ToLower(strings.TrimSpace(reg.Email))

	exists, err := s.Users.ExistsByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("username already exists")
	}
	exists, err = s.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return s.Users.Create(ctx, username, email, string(hash), model.RoleUser)
}
