package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 6

var (
	// ErrInvalidCredentials is returned for unknown usernames and wrong
	// passwords alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSuperAdminProtected rejects deletion of the super admin account.
	ErrSuperAdminProtected = errors.New("cannot delete super admin account")
)

// AdminStore is the persistence surface AdminService needs. Implemented by
// repository.AdminRepository.
type AdminStore interface {
	Create(ctx context.Context, username, email, passwordHash string, role model.Role) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.Admin, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateCredentials(ctx context.Context, id int64, username, email, passwordHash string, role model.Role) error
	Delete(ctx context.Context, id int64) error
}

type AdminService struct {
	Admins AdminStore
}

func NewAdminService(store AdminStore) *AdminService {
	return &AdminService{Admins: store}
}

type AdminRegistration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func validateRegistration(reg AdminRegistration) error {
	if strings.TrimSpace(reg.Username) == "" {
		return errors.New("username is required")
	}
	if strings.TrimSpace(reg.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(reg.Password) == "" {
		return errors.New("password is required")
	}
	if reg.ConfirmPassword != "" && reg.Password != reg.ConfirmPassword {
		return errors.New("passwords do not match")
	}
	if len(reg.Password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}

// Authenticate verifies a username/password pair against the stored hash.
// Missing fields surface as validation errors; unknown users and wrong
// passwords both return ErrInvalidCredentials. Read-only.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*model.Admin, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, errors.New("password is required")
	}
	a, err := s.Admins.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		// do not reveal whether the username exists
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	// zero out the hash before returning
	a.PasswordHash = ""
	return a, nil
}

// Register creates a regular admin account.
func (s *AdminService) Register(ctx context.Context, reg AdminRegistration) (int64, error) {
	if err := validateRegistration(reg); err != nil {
		return 0, err
	}
	username := strings.TrimSpace(reg.Username)
	email := strings.ToLower(strings.TrimSpace(reg.Email))

	exists, err := s.Admins.ExistsByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("username already exists")
	}
	exists, err = s.Admins.ExistsByEmail(ctx, email)
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
	return s.Admins.Create(ctx, username, email, string(hash), model.RoleAdmin)
}

func (s *AdminService) List(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.Admins.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range admins {
		admins[i].PasswordHash = ""
	}
	return admins, nil
}

// CanDelete reports whether the admin may be removed. The super admin can
// never be deleted; unknown ids cannot be deleted either.
func (s *AdminService) CanDelete(ctx context.Context, id int64) bool {
	a, err := s.Admins.GetByID(ctx, id)
	if err != nil {
		return false
	}
	return a.Role != model.RoleSuperAdmin
}

func (s *AdminService) Delete(ctx context.Context, id int64) error {
	a, err := s.Admins.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Role == model.RoleSuperAdmin {
		return ErrSuperAdminProtected
	}
	return s.Admins.Delete(ctx, id)
}

// BootstrapSuperAdmin ensures exactly one super admin exists with the given
// credentials. Duplicate super admins are collapsed onto the oldest record.
// Safe to run on every startup.
func (s *AdminService) BootstrapSuperAdmin(ctx context.Context, username, email, password string) (*model.Admin, error) {
	if username == "" || email == "" || password == "" {
		return nil, errors.New("bootstrap credentials are required")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	supers, err := s.Admins.ListByRole(ctx, model.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	if len(supers) > 0 {
		// Collapse duplicates onto the oldest record.
		for _, extra := range supers[1:] {
			if err := s.Admins.Delete(ctx, extra.AdminID); err != nil {
				return nil, err
			}
		}
		keep := supers[0]
		if err := s.Admins.UpdateCredentials(ctx, keep.AdminID, username, email, string(hash), model.RoleSuperAdmin); err != nil {
			return nil, err
		}
		return s.Admins.GetByID(ctx, keep.AdminID)
	}

	// Promote an existing account that already owns the email.
	if existing, err := s.Admins.GetByEmail(ctx, email); err == nil {
		if err := s.Admins.UpdateCredentials(ctx, existing.AdminID, username, email, string(hash), model.RoleSuperAdmin); err != nil {
			return nil, err
		}
		return s.Admins.GetByID(ctx, existing.AdminID)
	}

	id, err := s.Admins.Create(ctx, username, email, string(hash), model.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	return s.Admins.GetByID(ctx, id)
}

// Reconcile collapses admins that share an email, preferring the super
// admin row when one is among the duplicates. Idempotent; intended to run
// at startup after bootstrap, not on the request path. Returns the number
// of rows removed.
func (s *AdminService) Reconcile(ctx context.Context) (int, error) {
	admins, err := s.Admins.List(ctx)
	if err != nil {
		return 0, err
	}

	byEmail := make(map[string][]model.Admin)
	for _, a := range admins {
		byEmail[a.Email] = append(byEmail[a.Email], a)
	}

	removed := 0
	for _, group := range byEmail {
		if len(group) < 2 {
			continue
		}
		keep := group[0]
		for _, a := range group {
			if a.Role == model.RoleSuperAdmin {
				keep = a
				break
			}
		}
		for _, a := range group {
			if a.AdminID == keep.AdminID {
				continue
			}
			if err := s.Admins.Delete(ctx, a.AdminID); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}
