package repository

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var (
	ErrClassNotFound   = dao.ErrClassNotFound
	ErrClassFull       = dao.ErrClassFull
	ErrAlreadyEnrolled = dao.ErrAlreadyEnrolled
	ErrOwnClass        = dao.ErrOwnClass
	ErrClassCompleted  = dao.ErrClassCompleted
)

type ClassDAO interface {
	Insert(ctx context.Context, class dao.Class) (dao.Class, error)
	FindByID(ctx context.Context, id uint) (dao.Class, error)
	FindAll(ctx context.Context) ([]dao.Class, error)
	FindByInstructorID(ctx context.Context, instructorID uint) ([]dao.Class, error)
	FindByStudentID(ctx context.Context, studentID uint) ([]dao.Class, error)
	Update(ctx context.Context, class dao.Class) (dao.Class, error)
	Delete(ctx context.Context, id, instructorID uint) error
	AddStudentWithHold(ctx context.Context, classID, userID uint, cost int) error
	AddStudentIfAbsent(ctx context.Context, classID, userID uint) error
	CompleteWithTransfer(ctx context.Context, classID, instructorID uint) (int, error)
	Roster(ctx context.Context, classID uint) ([]dao.User, error)
}

type ClassRepository struct {
	dao ClassDAO
}

func NewClassRepository(dao ClassDAO) *ClassRepository {
	return &ClassRepository{
		dao: dao,
	}
}

func (r *ClassRepository) Create(ctx context.Context, class domain.Class) (domain.Class, error) {
	created, err := r.dao.Insert(ctx, classDomainToDao(class))
	if err != nil {
		return domain.Class{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return classDaoToDomain(created), nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id uint) (domain.Class, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Class{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return classDaoToDomain(found), nil
}

func (r *ClassRepository) FindAll(ctx context.Context) ([]domain.Class, error) {
	classes, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return classesDaoToDomain(classes), nil
}

func (r *ClassRepository) FindByInstructorID(ctx context.Context, instructorID uint) ([]domain.Class, error) {
	classes, err := r.dao.FindByInstructorID(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByInstructorID -> %w", err)
	}

	return classesDaoToDomain(classes), nil
}

func (r *ClassRepository) FindByStudentID(ctx context.Context, studentID uint) ([]domain.Class, error) {
	classes, err := r.dao.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudentID -> %w", err)
	}

	return classesDaoToDomain(classes), nil
}

func (r *ClassRepository) Update(ctx context.Context, class domain.Class) (domain.Class, error) {
	updated, err := r.dao.Update(ctx, classDomainToDao(class))
	if err != nil {
		return domain.Class{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return classDaoToDomain(updated), nil
}

func (r *ClassRepository) Delete(ctx context.Context, id, instructorID uint) error {
	if err := r.dao.Delete(ctx, id, instructorID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ClassRepository) AddStudentWithHold(ctx context.Context, classID, userID uint, cost int) error {
	if err := r.dao.AddStudentWithHold(ctx, classID, userID, cost); err != nil {
		return fmt.Errorf("r.dao.AddStudentWithHold -> %w", err)
	}

	return nil
}

func (r *ClassRepository) AddStudentIfAbsent(ctx context.Context, classID, userID uint) error {
	if err := r.dao.AddStudentIfAbsent(ctx, classID, userID); err != nil {
		return fmt.Errorf("r.dao.AddStudentIfAbsent -> %w", err)
	}

	return nil
}

func (r *ClassRepository) CompleteWithTransfer(ctx context.Context, classID, instructorID uint) (int, error) {
	earned, err := r.dao.CompleteWithTransfer(ctx, classID, instructorID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CompleteWithTransfer -> %w", err)
	}

	return earned, nil
}

func (r *ClassRepository) Roster(ctx context.Context, classID uint) ([]domain.User, error) {
	students, err := r.dao.Roster(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Roster -> %w", err)
	}

	roster := make([]domain.User, len(students))
	for i, s := range students {
		roster[i] = userDaoToDomain(s)
	}

	return roster, nil
}

func classDomainToDao(c domain.Class) dao.Class {
	return dao.Class{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		SkillID:        c.SkillID,
		InstructorID:   c.InstructorID,
		InstructorName: c.InstructorName,
		Date:           c.Date,
		MaxStudents:    c.MaxStudents,
		Completed:      c.Completed,
		Rating:         c.Rating,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func classDaoToDomain(c dao.Class) domain.Class {
	class := domain.Class{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		SkillID:        c.SkillID,
		InstructorID:   c.InstructorID,
		InstructorName: c.InstructorName,
		Date:           c.Date,
		MaxStudents:    c.MaxStudents,
		Completed:      c.Completed,
		Rating:         c.Rating,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}

	if c.Skill.ID != 0 {
		skill := skillDaoToDomain(c.Skill)
		class.Skill = &skill
	}

	for _, s := range c.Students {
		class.Students = append(class.Students, userDaoToDomain(s))
	}

	return class
}

func classesDaoToDomain(classes []dao.Class) []domain.Class {
	result := make([]domain.Class, len(classes))
	for i, c := range classes {
		result[i] = classDaoToDomain(c)
	}

	return result
}
