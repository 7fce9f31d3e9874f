package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSkillNotFound = errors.New("skill not found")

type Skill struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Category    string
	Level       string `gorm:"not null;default:beginner"` // "beginner", "intermediate", or "advanced"

	UserID uint `gorm:"not null;index"`
	Owner  User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SkillDAO struct {
	db *gorm.DB
}

func NewSkillDAO(db *gorm.DB) *SkillDAO {
	return &SkillDAO{
		db: db,
	}
}

func (d *SkillDAO) Insert(ctx context.Context, skill Skill) (Skill, error) {
	result := d.db.WithContext(ctx).Create(&skill)
	if result.Error != nil {
		return Skill{}, result.Error
	}

	return skill, nil
}

func (d *SkillDAO) FindByID(ctx context.Context, id uint) (Skill, error) {
	var skill Skill

	result := d.db.WithContext(ctx).Preload("Owner").First(&skill, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Skill{}, ErrSkillNotFound
		}

		return Skill{}, result.Error
	}

	return skill, nil
}

// Find lists skills matching an optional case-insensitive keyword on the
// title and an optional exact category.
func (d *SkillDAO) Find(ctx context.Context, keyword, category string) ([]Skill, error) {
	query := d.db.WithContext(ctx).Preload("Owner")

	if keyword != "" {
		query = query.Where("title ILIKE ?", "%"+keyword+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var skills []Skill
	if err := query.Order("created_at DESC").Find(&skills).Error; err != nil {
		return nil, err
	}

	return skills, nil
}

func (d *SkillDAO) Update(ctx context.Context, skill Skill) (Skill, error) {
	result := d.db.WithContext(ctx).Save(&skill)
	if result.Error != nil {
		return Skill{}, result.Error
	}

	return skill, nil
}

func (d *SkillDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Skill{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}

	return nil
}

// List returns a page of skills with optional category, level and
// title/description search filters.
func (d *SkillDAO) List(ctx context.Context, offset, limit int, category, level, search string) ([]Skill, int64, error) {
	query := d.db.WithContext(ctx).Model(&Skill{})

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if level != "" {
		query = query.Where("level = ?", level)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var skills []Skill
	err := query.Preload("Owner").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&skills).Error
	if err != nil {
		return nil, 0, err
	}

	return skills, total, nil
}

func (d *SkillDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&Skill{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (d *SkillDAO) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Skill{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

type groupCount struct {
	Key   string
	Count int64
}

func (d *SkillDAO) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return d.countGrouped(ctx, "category")
}

func (d *SkillDAO) CountByLevel(ctx context.Context) (map[string]int64, error) {
	return d.countGrouped(ctx, "level")
}

func (d *SkillDAO) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	var rows []groupCount

	err := d.db.WithContext(ctx).Model(&Skill{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}

	return counts, nil
}
