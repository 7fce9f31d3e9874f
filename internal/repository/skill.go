package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var ErrSkillNotFound = dao.ErrSkillNotFound

type SkillDAO interface {
	Insert(ctx context.Context, skill dao.Skill) (dao.Skill, error)
	FindByID(ctx context.Context, id uint) (dao.Skill, error)
	Find(ctx context.Context, keyword, category string) ([]dao.Skill, error)
	Update(ctx context.Context, skill dao.Skill) (dao.Skill, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, category, level, search string) ([]dao.Skill, int64, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	CountByLevel(ctx context.Context) (map[string]int64, error)
}

type SkillRepository struct {
	dao SkillDAO
}

func NewSkillRepository(dao SkillDAO) *SkillRepository {
	return &SkillRepository{
		dao: dao,
	}
}

func (r *SkillRepository) Create(ctx context.Context, skill domain.Skill) (domain.Skill, error) {
	created, err := r.dao.Insert(ctx, skillDomainToDao(skill))
	if err != nil {
		return domain.Skill{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return skillDaoToDomain(created), nil
}

func (r *SkillRepository) FindByID(ctx context.Context, id uint) (domain.Skill, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Skill{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return skillDaoToDomain(found), nil
}

func (r *SkillRepository) Find(ctx context.Context, keyword, category string) ([]domain.Skill, error) {
	skills, err := r.dao.Find(ctx, keyword, category)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return skillsDaoToDomain(skills), nil
}

func (r *SkillRepository) Update(ctx context.Context, skill domain.Skill) (domain.Skill, error) {
	updated, err := r.dao.Update(ctx, skillDomainToDao(skill))
	if err != nil {
		return domain.Skill{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return skillDaoToDomain(updated), nil
}

func (r *SkillRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SkillRepository) List(ctx context.Context, page, limit int, category, level, search string) (domain.Page[domain.Skill], error) {
	offset := (page - 1) * limit

	skills, total, err := r.dao.List(ctx, offset, limit, category, level, search)
	if err != nil {
		return domain.Page[domain.Skill]{}, fmt.Errorf("r.dao.List -> %w", err)
	}

	return domain.Page[domain.Skill]{
		Items:      skillsDaoToDomain(skills),
		TotalPages: totalPages(total, limit),
		Page:       page,
		Total:      total,
	}, nil
}

func (r *SkillRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *SkillRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := r.dao.CountCreatedSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountCreatedSince -> %w", err)
	}

	return count, nil
}

func (r *SkillRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	counts, err := r.dao.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByCategory -> %w", err)
	}

	return counts, nil
}

func (r *SkillRepository) CountByLevel(ctx context.Context) (map[string]int64, error) {
	counts, err := r.dao.CountByLevel(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByLevel -> %w", err)
	}

	return counts, nil
}

func skillDomainToDao(s domain.Skill) dao.Skill {
	return dao.Skill{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Category:    s.Category,
		Level:       string(s.Level),
		UserID:      s.UserID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func skillDaoToDomain(s dao.Skill) domain.Skill {
	skill := domain.Skill{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Category:    s.Category,
		Level:       domain.SkillLevel(s.Level),
		UserID:      s.UserID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if s.Owner.ID != 0 {
		owner := userDaoToDomain(s.Owner)
		skill.Owner = &owner
	}

	return skill
}

func skillsDaoToDomain(skills []dao.Skill) []domain.Skill {
	result := make([]domain.Skill, len(skills))
	for i, s := range skills {
		result[i] = skillDaoToDomain(s)
	}

	return result
}
