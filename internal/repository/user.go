package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByIDWithSkills(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (dao.User, error)
	AddCredits(ctx context.Context, id uint, amount int) (dao.User, error)
	DeleteWithSkills(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, role, search string) ([]dao.User, int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CreditAudit(ctx context.Context) ([]dao.CreditAuditRow, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Password:       user.Password,
		Role:           string(user.Role),
		Credits:        user.Credits,
		PendingCredits: user.PendingCredits,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userDaoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) FindByIDWithSkills(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByIDWithSkills(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByIDWithSkills -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, fields map[string]any) (domain.User, error) {
	updated, err := r.dao.UpdateFields(ctx, id, fields)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return userDaoToDomain(updated), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	_, err := r.dao.UpdateFields(ctx, id, map[string]any{"password": hashedPassword})
	if err != nil {
		return fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role domain.Role) (domain.User, error) {
	updated, err := r.dao.UpdateFields(ctx, id, map[string]any{"role": string(role)})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return userDaoToDomain(updated), nil
}

// Suspend zeroes the user's available credits. Pending holds are left as-is
// so open bookings still settle.
func (r *UserRepository) Suspend(ctx context.Context, id uint) (domain.User, error) {
	updated, err := r.dao.UpdateFields(ctx, id, map[string]any{"credits": 0})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return userDaoToDomain(updated), nil
}

func (r *UserRepository) AddCredits(ctx context.Context, id uint, amount int) (domain.User, error) {
	updated, err := r.dao.AddCredits(ctx, id, amount)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.AddCredits -> %w", err)
	}

	return userDaoToDomain(updated), nil
}

func (r *UserRepository) DeleteWithSkills(ctx context.Context, id uint) error {
	if err := r.dao.DeleteWithSkills(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteWithSkills -> %w", err)
	}

	return nil
}

func (r *UserRepository) List(ctx context.Context, page, limit int, role, search string) (domain.Page[domain.User], error) {
	offset := (page - 1) * limit

	users, total, err := r.dao.List(ctx, offset, limit, role, search)
	if err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("r.dao.List -> %w", err)
	}

	items := make([]domain.User, len(users))
	for i, u := range users {
		items[i] = userDaoToDomain(u)
	}

	return domain.Page[domain.User]{
		Items:      items,
		TotalPages: totalPages(total, limit),
		Page:       page,
		Total:      total,
	}, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	count, err := r.dao.CountByRole(ctx, string(role))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByRole -> %w", err)
	}

	return count, nil
}

func (r *UserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := r.dao.CountCreatedSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountCreatedSince -> %w", err)
	}

	return count, nil
}

func (r *UserRepository) CreditAudit(ctx context.Context) ([]domain.CreditAuditEntry, error) {
	rows, err := r.dao.CreditAudit(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CreditAudit -> %w", err)
	}

	entries := make([]domain.CreditAuditEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.CreditAuditEntry{
			UserID:         row.UserID,
			PendingCredits: row.PendingCredits,
			OpenHolds:      row.OpenHolds,
		}
	}

	return entries, nil
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return pages
}

func userDaoToDomain(u dao.User) domain.User {
	user := domain.User{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Password:       u.Password,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Role:           domain.Role(u.Role),
		Credits:        u.Credits,
		PendingCredits: u.PendingCredits,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}

	for _, s := range u.Skills {
		user.Skills = append(user.Skills, skillDaoToDomain(s))
	}

	return user
}
