package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

type stubSkillRepo struct {
	skills map[uint]domain.Skill
	nextID uint
}

func newStubSkillRepo() *stubSkillRepo {
	return &stubSkillRepo{skills: make(map[uint]domain.Skill)}
}

func (r *stubSkillRepo) Create(_ context.Context, skill domain.Skill) (domain.Skill, error) {
	r.nextID++
	skill.ID = r.nextID
	r.skills[skill.ID] = skill

	return skill, nil
}

func (r *stubSkillRepo) FindByID(_ context.Context, id uint) (domain.Skill, error) {
	skill, ok := r.skills[id]
	if !ok {
		return domain.Skill{}, repository.ErrSkillNotFound
	}

	return skill, nil
}

func (r *stubSkillRepo) Find(_ context.Context, keyword, category string) ([]domain.Skill, error) {
	var skills []domain.Skill
	for _, s := range r.skills {
		if keyword != "" && !strings.Contains(strings.ToLower(s.Title), strings.ToLower(keyword)) {
			continue
		}
		if category != "" && s.Category != category {
			continue
		}
		skills = append(skills, s)
	}

	return skills, nil
}

func (r *stubSkillRepo) Update(_ context.Context, skill domain.Skill) (domain.Skill, error) {
	if _, ok := r.skills[skill.ID]; !ok {
		return domain.Skill{}, repository.ErrSkillNotFound
	}
	r.skills[skill.ID] = skill

	return skill, nil
}

func (r *stubSkillRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.skills[id]; !ok {
		return repository.ErrSkillNotFound
	}
	delete(r.skills, id)

	return nil
}

func (r *stubSkillRepo) List(_ context.Context, page, limit int, category, level, search string) (domain.Page[domain.Skill], error) {
	skills, _ := r.Find(context.Background(), search, category)
	var items []domain.Skill
	for _, s := range skills {
		if level != "" && string(s.Level) != level {
			continue
		}
		items = append(items, s)
	}

	return domain.Page[domain.Skill]{Items: items, Page: page, Total: int64(len(items))}, nil
}

func newSkillFixture(t *testing.T) (*stubSkillRepo, *SkillService) {
	t.Helper()

	repo := newStubSkillRepo()
	svc := NewSkillService(repo)

	_, err := svc.CreateSkill(context.Background(), domain.Skill{
		Title:    "Jazz piano",
		Category: "music",
		Level:    domain.LevelAdvanced,
		UserID:   1,
	})
	require.NoError(t, err)

	return repo, svc
}

func TestUpdateSkillOwnerOnly(t *testing.T) {
	_, svc := newSkillFixture(t)

	_, err := svc.UpdateSkill(context.Background(), 2, domain.Skill{ID: 1, Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrNotSkillOwner)

	updated, err := svc.UpdateSkill(context.Background(), 1, domain.Skill{ID: 1, Title: "Jazz piano, bebop", Level: domain.LevelAdvanced})
	require.NoError(t, err)
	assert.Equal(t, "Jazz piano, bebop", updated.Title)
}

func TestUpdateSkillPreservesOwnership(t *testing.T) {
	repo, svc := newSkillFixture(t)

	created := repo.skills[1]
	created.CreatedAt = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	repo.skills[1] = created

	updated, err := svc.UpdateSkill(context.Background(), 1, domain.Skill{
		ID:     1,
		Title:  "Jazz piano",
		Level:  domain.LevelIntermediate,
		UserID: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), updated.UserID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestDeleteSkillOwnerOnly(t *testing.T) {
	repo, svc := newSkillFixture(t)

	err := svc.DeleteSkill(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrNotSkillOwner)

	err = svc.DeleteSkill(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, repo.skills)

	err = svc.DeleteSkill(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrSkillNotFound)
}

func TestSearchSkills(t *testing.T) {
	_, svc := newSkillFixture(t)

	_, err := svc.CreateSkill(context.Background(), domain.Skill{
		Title:    "Watercolor painting",
		Category: "art",
		Level:    domain.LevelBeginner,
		UserID:   2,
	})
	require.NoError(t, err)

	found, err := svc.SearchSkills(context.Background(), "piano", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Jazz piano", found[0].Title)

	found, err = svc.SearchSkills(context.Background(), "", "art")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
