package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skillswap/skillswap-api/internal/domain"
)

var (
	ErrInvalidRole    = errors.New("invalid role")
	ErrSelfModeration = errors.New("cannot moderate own account")
)

// recentWindow bounds the "new this week" counters on the dashboard.
const recentWindow = 7 * 24 * time.Hour

type AdminUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	List(ctx context.Context, page, limit int, role, search string) (domain.Page[domain.User], error)
	UpdateRole(ctx context.Context, id uint, role domain.Role) (domain.User, error)
	Suspend(ctx context.Context, id uint) (domain.User, error)
	AddCredits(ctx context.Context, id uint, amount int) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	DeleteWithSkills(ctx context.Context, id uint) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type AdminSkillRepository interface {
	List(ctx context.Context, page, limit int, category, level, search string) (domain.Page[domain.Skill], error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	CountByLevel(ctx context.Context) (map[string]int64, error)
}

type AdminService struct {
	userRepo  AdminUserRepository
	skillRepo AdminSkillRepository
}

func NewAdminService(userRepo AdminUserRepository, skillRepo AdminSkillRepository) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		skillRepo: skillRepo,
	}
}

func (s *AdminService) GetStats(ctx context.Context) (domain.AdminStats, error) {
	var stats domain.AdminStats
	since := time.Now().Add(-recentWindow)

	roleCounts := []struct {
		role   domain.Role
		target *int64
	}{
		{domain.RoleLearner, &stats.TotalLearners},
		{domain.RoleTeacher, &stats.TotalTeachers},
		{domain.RoleAdmin, &stats.TotalAdmins},
	}
	for _, rc := range roleCounts {
		count, err := s.userRepo.CountByRole(ctx, rc.role)
		if err != nil {
			return domain.AdminStats{}, fmt.Errorf("s.userRepo.CountByRole -> %w", err)
		}
		*rc.target = count
	}
	stats.TotalUsers = stats.TotalLearners + stats.TotalTeachers + stats.TotalAdmins

	totalSkills, err := s.skillRepo.Count(ctx)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.skillRepo.Count -> %w", err)
	}
	stats.TotalSkills = totalSkills

	recentUsers, err := s.userRepo.CountCreatedSince(ctx, since)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.userRepo.CountCreatedSince -> %w", err)
	}
	stats.RecentUsers = recentUsers

	recentSkills, err := s.skillRepo.CountCreatedSince(ctx, since)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.skillRepo.CountCreatedSince -> %w", err)
	}
	stats.RecentSkills = recentSkills

	byCategory, err := s.skillRepo.CountByCategory(ctx)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.skillRepo.CountByCategory -> %w", err)
	}
	stats.SkillsByCategory = byCategory

	byLevel, err := s.skillRepo.CountByLevel(ctx)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.skillRepo.CountByLevel -> %w", err)
	}
	stats.SkillsByLevel = byLevel

	return stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int, role, search string) (domain.Page[domain.User], error) {
	users, err := s.userRepo.List(ctx, page, limit, role, search)
	if err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("s.userRepo.List -> %w", err)
	}

	return users, nil
}

func (s *AdminService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *AdminService) UpdateRole(ctx context.Context, id uint, role domain.Role) (domain.User, error) {
	if !role.IsValid() {
		return domain.User{}, ErrInvalidRole
	}

	updated, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.userRepo.UpdateRole -> %w", err)
	}

	return updated, nil
}

// SuspendUser zeroes the user's available credits. Pending holds survive so
// open bookings still settle.
func (s *AdminService) SuspendUser(ctx context.Context, adminID, id uint) (domain.User, error) {
	if adminID == id {
		return domain.User{}, ErrSelfModeration
	}

	suspended, err := s.userRepo.Suspend(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.userRepo.Suspend -> %w", err)
	}

	return suspended, nil
}

func (s *AdminService) AddCredits(ctx context.Context, id uint, amount int) (domain.User, error) {
	updated, err := s.userRepo.AddCredits(ctx, id, amount)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.userRepo.AddCredits -> %w", err)
	}

	return updated, nil
}

func (s *AdminService) ResetPassword(ctx context.Context, id uint, newPassword string) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	hashedPassword, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err = s.userRepo.UpdatePassword(ctx, id, hashedPassword); err != nil {
		return fmt.Errorf("s.userRepo.UpdatePassword -> %w", err)
	}

	return nil
}

// DeleteUser removes the account and its skills. Admins cannot delete
// themselves.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, id uint) error {
	if adminID == id {
		return ErrSelfModeration
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if err := s.userRepo.DeleteWithSkills(ctx, id); err != nil {
		return fmt.Errorf("s.userRepo.DeleteWithSkills -> %w", err)
	}

	return nil
}

func (s *AdminService) ListSkills(ctx context.Context, page, limit int, category, level, search string) (domain.Page[domain.Skill], error) {
	skills, err := s.skillRepo.List(ctx, page, limit, category, level, search)
	if err != nil {
		return domain.Page[domain.Skill]{}, fmt.Errorf("s.skillRepo.List -> %w", err)
	}

	return skills, nil
}

func (s *AdminService) DeleteSkill(ctx context.Context, id uint) error {
	if err := s.skillRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.skillRepo.Delete -> %w", err)
	}

	return nil
}
