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

type stubUserRepo struct {
	users     map[uint]*domain.User
	passwords map[uint]string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:     make(map[uint]*domain.User),
		passwords: make(map[uint]string),
	}
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return *user, nil
}

func (r *stubUserRepo) FindByIDWithSkills(ctx context.Context, id uint) (domain.User, error) {
	return r.FindByID(ctx, id)
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id uint, fields map[string]any) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	if bio, ok := fields["bio"].(string); ok {
		user.Bio = bio
	}
	if name, ok := fields["first_name"].(string); ok {
		user.FirstName = name
	}

	return *user, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id uint, hashedPassword string) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	r.passwords[id] = hashedPassword

	return nil
}

func newUserFixture(t *testing.T) (*stubUserRepo, *UserService) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("oldpassword1"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newStubUserRepo()
	repo.users[1] = &domain.User{
		ID:             1,
		FirstName:      "Ada",
		Password:       string(hash),
		Role:           domain.RoleTeacher,
		Credits:        3,
		PendingCredits: 2,
		Skills: []domain.Skill{
			{ID: 10, Level: domain.LevelBeginner},
			{ID: 11, Level: domain.LevelBeginner},
			{ID: 12, Level: domain.LevelAdvanced},
		},
	}
	repo.users[2] = &domain.User{ID: 2, Role: domain.RoleAdmin}

	return repo, NewUserService(repo)
}

func TestGetPublicProfileHidesPendingCredits(t *testing.T) {
	_, svc := newUserFixture(t)

	profile, err := svc.GetPublicProfile(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 3, profile.Credits)
	assert.Equal(t, 0, profile.PendingCredits)

	me, err := svc.GetUserWithSkills(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, me.PendingCredits)
}

func TestChangePassword(t *testing.T) {
	repo, svc := newUserFixture(t)

	err := svc.ChangePassword(context.Background(), 1, "wrongpassword", "newpassword1")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.Empty(t, repo.passwords)

	err = svc.ChangePassword(context.Background(), 1, "oldpassword1", "newpassword1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.passwords[1]), []byte("newpassword1")))
}

func TestGetStatsCountsSkillsByLevel(t *testing.T) {
	_, svc := newUserFixture(t)

	stats, err := svc.GetStats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Credits)
	assert.Equal(t, 3, stats.TotalSkills)
	assert.Equal(t, 2, stats.SkillsByLevel["beginner"])
	assert.Equal(t, 1, stats.SkillsByLevel["advanced"])
}

func TestIsAdmin(t *testing.T) {
	_, svc := newUserFixture(t)

	isAdmin, err := svc.IsAdmin(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.IsAdmin(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	// Unknown users are simply not admins.
	isAdmin, err = svc.IsAdmin(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}
