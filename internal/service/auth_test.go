package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

type stubAuthRepo struct {
	byEmail map[string]domain.User
	nextID  uint
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byEmail: make(map[string]domain.User)}
}

func (r *stubAuthRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}
	r.nextID++
	user.ID = r.nextID
	r.byEmail[user.Email] = user

	return user, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestSignupGrantsStartingCredit(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo())

	user, err := svc.Signup(context.Background(), domain.User{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Password:  "compiler1",
		Role:      domain.RoleTeacher,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, user.Credits)
	assert.Equal(t, 0, user.PendingCredits)
	assert.Equal(t, domain.RoleTeacher, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("compiler1")))
}

func TestSignupNeverGrantsAdminRole(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo())

	tests := []struct {
		name string
		role domain.Role
	}{
		{"admin requested", domain.RoleAdmin},
		{"unknown role", domain.Role("superuser")},
		{"empty role", domain.Role("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Signup(context.Background(), domain.User{
				Email:    tt.name + "@example.com",
				Password: "password1",
				Role:     tt.role,
			})
			require.NoError(t, err)

			assert.Equal(t, domain.RoleLearner, user.Role)
		})
	}
}

func TestEmailNormalization(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo())

	created, err := svc.Signup(context.Background(), domain.User{Email: "  Grace@Example.COM ", Password: "compiler1"})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", created.Email)

	_, err = svc.Signup(context.Background(), domain.User{Email: "grace@example.com", Password: "compiler1"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	user, err := svc.Login(context.Background(), "GRACE@example.com", "compiler1")
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", user.Email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo())

	_, err := svc.Signup(context.Background(), domain.User{Email: "dup@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Email: "dup@example.com", Password: "password1"})

	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo())

	_, err := svc.Signup(context.Background(), domain.User{Email: "grace@example.com", Password: "compiler1"})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "grace@example.com", "compiler1")
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", user.Email)

	_, err = svc.Login(context.Background(), "grace@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody@example.com", "compiler1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
