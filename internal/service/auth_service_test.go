package service

import (
	"testing"

	"go-carwash-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) UpdatePrivileges(userID uuid.UUID, privileges []model.Privilege) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Privileges = privileges
	return nil
}

func (r *fakeUserRepo) FindAll() ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.TokenVersion = version
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    email,
		FullName: "Test User",
		IsActive: true,
		Role:     &model.Role{ID: 1, Code: model.RoleEmployee},
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, repo.Create(user))
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "user@example.com", "secret123")
	svc := NewAuthService(repo)

	resp, err := svc.Login("user@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user@example.com", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "user@example.com", "secret123")
	svc := NewAuthService(repo)

	_, err := svc.Login("user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "user@example.com", "secret123")
	user.IsActive = false
	svc := NewAuthService(repo)

	_, err := svc.Login("user@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserInactive)
}

// Logging in again rotates the token version, so the first session's token
// stops validating.
func TestLoginInvalidatesPreviousSession(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "user@example.com", "secret123")
	svc := NewAuthService(repo)

	first, err := svc.Login("user@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(first.Token)
	require.NoError(t, err)

	second, err := svc.Login("user@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(first.Token)
	assert.Error(t, err, "token from the first session must be rejected")

	_, err = svc.ValidateToken(second.Token)
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "user@example.com", "secret123")
	svc := NewAuthService(repo)

	require.NoError(t, svc.ResetPassword("user@example.com", "secret123", "newsecret"))

	_, err := svc.Login("user@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("user@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestResetPasswordWrongOldPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "user@example.com", "secret123")
	svc := NewAuthService(repo)

	err := svc.ResetPassword("user@example.com", "wrong", "newsecret")
	assert.ErrorIs(t, err, ErrWrongPassword)
}
