package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var (
	ErrSkillNotFound = repository.ErrSkillNotFound
	ErrNotSkillOwner = errors.New("not the owner of the skill")
)

type SkillRepository interface {
	Create(ctx context.Context, skill domain.Skill) (domain.Skill, error)
	FindByID(ctx context.Context, id uint) (domain.Skill, error)
	Find(ctx context.Context, keyword, category string) ([]domain.Skill, error)
	Update(ctx context.Context, skill domain.Skill) (domain.Skill, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page, limit int, category, level, search string) (domain.Page[domain.Skill], error)
}

type SkillService struct {
	repo SkillRepository
}

func NewSkillService(repo SkillRepository) *SkillService {
	return &SkillService{
		repo: repo,
	}
}

func (s *SkillService) CreateSkill(ctx context.Context, skill domain.Skill) (domain.Skill, error) {
	created, err := s.repo.Create(ctx, skill)
	if err != nil {
		return domain.Skill{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SkillService) GetSkill(ctx context.Context, id uint) (domain.Skill, error) {
	skill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Skill{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return skill, nil
}

func (s *SkillService) ListSkills(ctx context.Context, page, limit int, category, level, search string) (domain.Page[domain.Skill], error) {
	skills, err := s.repo.List(ctx, page, limit, category, level, search)
	if err != nil {
		return domain.Page[domain.Skill]{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return skills, nil
}

func (s *SkillService) SearchSkills(ctx context.Context, keyword, category string) ([]domain.Skill, error) {
	skills, err := s.repo.Find(ctx, keyword, category)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return skills, nil
}

func (s *SkillService) UpdateSkill(ctx context.Context, userID uint, skill domain.Skill) (domain.Skill, error) {
	existing, err := s.repo.FindByID(ctx, skill.ID)
	if err != nil {
		return domain.Skill{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if existing.UserID != userID {
		return domain.Skill{}, ErrNotSkillOwner
	}

	skill.UserID = existing.UserID
	skill.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, skill)
	if err != nil {
		return domain.Skill{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *SkillService) DeleteSkill(ctx context.Context, userID, skillID uint) error {
	existing, err := s.repo.FindByID(ctx, skillID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if existing.UserID != userID {
		return ErrNotSkillOwner
	}

	if err = s.repo.Delete(ctx, skillID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
