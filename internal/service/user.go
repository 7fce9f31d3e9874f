package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var ErrUserNotFound = repository.ErrUserNotFound

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByIDWithSkills(ctx context.Context, id uint) (domain.User, error)
	UpdateProfile(ctx context.Context, id uint, fields map[string]any) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetUserWithSkills(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByIDWithSkills(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByIDWithSkills -> %w", err)
	}

	return user, nil
}

// GetPublicProfile returns another user's profile with their skills. The
// caller sees credits but not the pending balance of someone else, so the
// pending figure is zeroed.
func (s *UserService) GetPublicProfile(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByIDWithSkills(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByIDWithSkills -> %w", err)
	}

	user.PendingCredits = 0

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, fields map[string]any) (domain.User, error) {
	updated, err := s.repo.UpdateProfile(ctx, id, fields)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return updated, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, id, hashedPassword); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

func (s *UserService) GetStats(ctx context.Context, id uint) (domain.UserStats, error) {
	user, err := s.repo.FindByIDWithSkills(ctx, id)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("s.repo.FindByIDWithSkills -> %w", err)
	}

	stats := domain.UserStats{
		Credits:       user.Credits,
		TotalSkills:   len(user.Skills),
		SkillsByLevel: make(map[string]int),
	}
	for _, skill := range user.Skills {
		stats.SkillsByLevel[string(skill.Level)]++
	}

	return stats, nil
}

// IsAdmin reports whether the user holds the admin role. Unknown users are
// not admins.
func (s *UserService) IsAdmin(ctx context.Context, id uint) (bool, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user.Role == domain.RoleAdmin, nil
}
