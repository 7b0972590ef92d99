package services

import (
	"context"
	"sort"
	"testing"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"
	"github.com/Visithrand/infant-jesus-dvk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeAdminStore is an in-memory AdminStore for service tests.
type fakeAdminStore struct {
	nextID int64
	admins map[int64]model.Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{nextID: 1, admins: make(map[int64]model.Admin)}
}

func (f *fakeAdminStore) Create(_ context.Context, username, email, passwordHash string, role model.Role) (int64, error) {
	id := f.nextID
	f.nextID++
	f.admins[id] = model.Admin{AdminID: id, Username: username, Email: email, PasswordHash: passwordHash, Role: role}
	return id, nil
}

func (f *fakeAdminStore) GetByID(_ context.Context, id int64) (*model.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAdminStore) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	for _, a := range f.sorted() {
		if a.Username == username {
			a := a
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAdminStore) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range f.sorted() {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAdminStore) List(_ context.Context) ([]model.Admin, error) {
	return f.sorted(), nil
}

func (f *fakeAdminStore) ListByRole(_ context.Context, role model.Role) ([]model.Admin, error) {
	var out []model.Admin
	for _, a := range f.sorted() {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAdminStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeAdminStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeAdminStore) UpdateCredentials(_ context.Context, id int64, username, email, passwordHash string, role model.Role) error {
	a, ok := f.admins[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Username = username
	a.Email = email
	a.PasswordHash = passwordHash
	a.Role = role
	f.admins[id] = a
	return nil
}

func (f *fakeAdminStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.admins[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.admins, id)
	return nil
}

// sorted returns admins ordered by id, oldest first, matching the repository.
func (f *fakeAdminStore) sorted() []model.Admin {
	out := make([]model.Admin, 0, len(f.admins))
	for _, a := range f.admins {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AdminID < out[j].AdminID })
	return out
}

func (f *fakeAdminStore) seed(t *testing.T, username, email, password string, role model.Role) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	id, err := f.Create(context.Background(), username, email, string(hash), role)
	require.NoError(t, err)
	return id
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	store.seed(t, "alice", "alice@school.edu", "s3cret123", model.RoleAdmin)
	svc := NewAdminService(store)

	t.Run("success returns stored role and no hash", func(t *testing.T) {
		a, err := svc.Authenticate(ctx, "alice", "s3cret123")
		require.NoError(t, err)
		assert.Equal(t, "alice", a.Username)
		assert.Equal(t, model.RoleAdmin, a.Role)
		assert.Empty(t, a.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "mallory", "s3cret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields are validation errors", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "s3cret123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Authenticate(ctx, "alice", "  ")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	store.seed(t, "alice", "alice@school.edu", "s3cret123", model.RoleAdmin)
	svc := NewAdminService(store)

	t.Run("creates admin with lowercased email", func(t *testing.T) {
		id, err := svc.Register(ctx, AdminRegistration{
			Username: "bob",
			Email:    "Bob@School.EDU",
			Password: "hunter22",
		})
		require.NoError(t, err)

		a, err := store.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "bob@school.edu", a.Email)
		assert.Equal(t, model.RoleAdmin, a.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("hunter22")))
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, AdminRegistration{Username: "alice", Email: "new@school.edu", Password: "hunter22"})
		assert.EqualError(t, err, "username already exists")
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, AdminRegistration{Username: "carol", Email: "alice@school.edu", Password: "hunter22"})
		assert.EqualError(t, err, "email already exists")
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, AdminRegistration{Username: "carol", Email: "carol@school.edu", Password: "abc12"})
		assert.Error(t, err)
	})

	t.Run("mismatched confirmation rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, AdminRegistration{
			Username:        "carol",
			Email:           "carol@school.edu",
			Password:        "hunter22",
			ConfirmPassword: "hunter23",
		})
		assert.EqualError(t, err, "passwords do not match")
	})
}

func TestCanDelete(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	adminID := store.seed(t, "alice", "alice@school.edu", "s3cret123", model.RoleAdmin)
	superID := store.seed(t, "root", "root@school.edu", "s3cret123", model.RoleSuperAdmin)
	svc := NewAdminService(store)

	assert.True(t, svc.CanDelete(ctx, adminID))
	assert.False(t, svc.CanDelete(ctx, superID))
	assert.False(t, svc.CanDelete(ctx, 999), "unknown id cannot be deleted")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	adminID := store.seed(t, "alice", "alice@school.edu", "s3cret123", model.RoleAdmin)
	superID := store.seed(t, "root", "root@school.edu", "s3cret123", model.RoleSuperAdmin)
	svc := NewAdminService(store)

	require.NoError(t, svc.Delete(ctx, adminID))
	_, err := store.GetByID(ctx, adminID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, superID), ErrSuperAdminProtected)
	assert.ErrorIs(t, svc.Delete(ctx, 999), repository.ErrNotFound)
}

func TestBootstrapSuperAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when absent and is idempotent", func(t *testing.T) {
		store := newFakeAdminStore()
		svc := NewAdminService(store)

		first, err := svc.BootstrapSuperAdmin(ctx, "root", "root@school.edu", "rootpass")
		require.NoError(t, err)
		assert.Equal(t, model.RoleSuperAdmin, first.Role)

		second, err := svc.BootstrapSuperAdmin(ctx, "root", "root@school.edu", "rootpass")
		require.NoError(t, err)
		assert.Equal(t, first.AdminID, second.AdminID)

		supers, err := store.ListByRole(ctx, model.RoleSuperAdmin)
		require.NoError(t, err)
		assert.Len(t, supers, 1)
	})

	t.Run("collapses duplicate super admins onto the oldest", func(t *testing.T) {
		store := newFakeAdminStore()
		oldest := store.seed(t, "root1", "root1@school.edu", "x1y2z3", model.RoleSuperAdmin)
		store.seed(t, "root2", "root2@school.edu", "x1y2z3", model.RoleSuperAdmin)
		store.seed(t, "root3", "root3@school.edu", "x1y2z3", model.RoleSuperAdmin)
		svc := NewAdminService(store)

		got, err := svc.BootstrapSuperAdmin(ctx, "root", "root@school.edu", "rootpass")
		require.NoError(t, err)
		assert.Equal(t, oldest, got.AdminID)
		assert.Equal(t, "root", got.Username)
		assert.Equal(t, "root@school.edu", got.Email)

		supers, err := store.ListByRole(ctx, model.RoleSuperAdmin)
		require.NoError(t, err)
		require.Len(t, supers, 1)
		assert.Equal(t, oldest, supers[0].AdminID)
	})

	t.Run("promotes an existing account owning the email", func(t *testing.T) {
		store := newFakeAdminStore()
		existing := store.seed(t, "alice", "root@school.edu", "s3cret123", model.RoleAdmin)
		svc := NewAdminService(store)

		got, err := svc.BootstrapSuperAdmin(ctx, "root", "Root@School.edu", "rootpass")
		require.NoError(t, err)
		assert.Equal(t, existing, got.AdminID)
		assert.Equal(t, model.RoleSuperAdmin, got.Role)
		assert.Equal(t, "root", got.Username)
	})

	t.Run("missing credentials rejected", func(t *testing.T) {
		svc := NewAdminService(newFakeAdminStore())
		_, err := svc.BootstrapSuperAdmin(ctx, "root", "", "rootpass")
		assert.Error(t, err)
	})
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("no duplicates is a no-op", func(t *testing.T) {
		store := newFakeAdminStore()
		store.seed(t, "alice", "alice@school.edu", "s3cret123", model.RoleAdmin)
		store.seed(t, "bob", "bob@school.edu", "s3cret123", model.RoleAdmin)
		svc := NewAdminService(store)

		removed, err := svc.Reconcile(ctx)
		require.NoError(t, err)
		assert.Zero(t, removed)
		assert.Len(t, store.admins, 2)
	})

	t.Run("prefers the super admin among duplicates", func(t *testing.T) {
		store := newFakeAdminStore()
		store.seed(t, "imposter", "root@school.edu", "s3cret123", model.RoleAdmin)
		superID := store.seed(t, "root", "root@school.edu", "rootpass", model.RoleSuperAdmin)
		store.seed(t, "imposter2", "root@school.edu", "s3cret123", model.RoleAdmin)
		svc := NewAdminService(store)

		removed, err := svc.Reconcile(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		remaining, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, superID, remaining[0].AdminID)
	})
}
