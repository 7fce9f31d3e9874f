package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var (
	ErrClassNotFound     = repository.ErrClassNotFound
	ErrClassFull         = repository.ErrClassFull
	ErrAlreadyEnrolled   = repository.ErrAlreadyEnrolled
	ErrOwnClass          = repository.ErrOwnClass
	ErrClassCompleted    = repository.ErrClassCompleted
	ErrClassPostNotFound = repository.ErrClassPostNotFound

	ErrNotClassInstructor = errors.New("only the instructor can manage this class")
	ErrNotClassMember     = errors.New("not enrolled in this class")
)

// enrollmentCreditCost is the flat price of joining a class.
const enrollmentCreditCost = 1

type ClassRepository interface {
	Create(ctx context.Context, class domain.Class) (domain.Class, error)
	FindByID(ctx context.Context, id uint) (domain.Class, error)
	FindAll(ctx context.Context) ([]domain.Class, error)
	FindByInstructorID(ctx context.Context, instructorID uint) ([]domain.Class, error)
	FindByStudentID(ctx context.Context, studentID uint) ([]domain.Class, error)
	Update(ctx context.Context, class domain.Class) (domain.Class, error)
	Delete(ctx context.Context, id, instructorID uint) error
	AddStudentWithHold(ctx context.Context, classID, userID uint, cost int) error
	CompleteWithTransfer(ctx context.Context, classID, instructorID uint) (int, error)
	Roster(ctx context.Context, classID uint) ([]domain.User, error)
}

type ClassUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type ClassSkillRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Skill, error)
}

type ClassPostRepository interface {
	CreatePost(ctx context.Context, post domain.ClassPost) (domain.ClassPost, error)
	FindPostsByClassID(ctx context.Context, classID uint) ([]domain.ClassPost, error)
	ReactToPost(ctx context.Context, postID uint, reaction domain.ReactionKind) (domain.ClassPost, error)
}

type ClassService struct {
	repo      ClassRepository
	userRepo  ClassUserRepository
	skillRepo ClassSkillRepository
	postRepo  ClassPostRepository
}

func NewClassService(repo ClassRepository, userRepo ClassUserRepository, skillRepo ClassSkillRepository, postRepo ClassPostRepository) *ClassService {
	return &ClassService{
		repo:      repo,
		userRepo:  userRepo,
		skillRepo: skillRepo,
		postRepo:  postRepo,
	}
}

// CreateClass opens a group class for a skill the instructor owns. The class
// description falls back to the skill's when empty, and the instructor name
// is denormalized onto the class for listings.
func (s *ClassService) CreateClass(ctx context.Context, class domain.Class) (domain.Class, error) {
	skill, err := s.skillRepo.FindByID(ctx, class.SkillID)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.skillRepo.FindByID -> %w", err)
	}

	if skill.UserID != class.InstructorID {
		return domain.Class{}, ErrNotSkillOwner
	}

	instructor, err := s.userRepo.FindByID(ctx, class.InstructorID)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if class.Title == "" {
		class.Title = skill.Title
	}
	if class.Description == "" {
		class.Description = skill.Description
	}
	class.InstructorName = instructor.FullName()
	class.Completed = false

	created, err := s.repo.Create(ctx, class)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ClassService) ListClasses(ctx context.Context) ([]domain.Class, error) {
	classes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return classes, nil
}

func (s *ClassService) GetClass(ctx context.Context, id uint) (domain.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return class, nil
}

func (s *ClassService) UpdateClass(ctx context.Context, instructorID uint, class domain.Class) (domain.Class, error) {
	existing, err := s.repo.FindByID(ctx, class.ID)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if existing.InstructorID != instructorID {
		return domain.Class{}, ErrNotClassInstructor
	}
	if existing.Completed {
		return domain.Class{}, ErrClassCompleted
	}

	class.SkillID = existing.SkillID
	class.InstructorID = existing.InstructorID
	class.InstructorName = existing.InstructorName
	class.Completed = existing.Completed
	class.Rating = existing.Rating
	class.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, class)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ClassService) DeleteClass(ctx context.Context, instructorID, classID uint) error {
	if err := s.repo.Delete(ctx, classID, instructorID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// JoinClass enrolls the user and puts one credit on hold. Capacity,
// duplicate enrollment, own-class and balance checks all happen inside one
// transaction in the storage layer.
func (s *ClassService) JoinClass(ctx context.Context, classID, userID uint) (domain.Class, error) {
	if err := s.repo.AddStudentWithHold(ctx, classID, userID, enrollmentCreditCost); err != nil {
		return domain.Class{}, fmt.Errorf("s.repo.AddStudentWithHold -> %w", err)
	}

	class, err := s.repo.FindByID(ctx, classID)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return class, nil
}

// CompleteClass settles the whole roster in one batch: each student with a
// positive pending balance pays one credit and the instructor earns one per
// payer. Completing twice is rejected.
func (s *ClassService) CompleteClass(ctx context.Context, instructorID, classID uint) (domain.ClassCompletionResult, error) {
	class, err := s.repo.FindByID(ctx, classID)
	if err != nil {
		return domain.ClassCompletionResult{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if class.InstructorID != instructorID {
		return domain.ClassCompletionResult{}, ErrNotClassInstructor
	}

	earned, err := s.repo.CompleteWithTransfer(ctx, classID, instructorID)
	if err != nil {
		return domain.ClassCompletionResult{}, fmt.Errorf("s.repo.CompleteWithTransfer -> %w", err)
	}

	instructor, err := s.userRepo.FindByID(ctx, instructorID)
	if err != nil {
		return domain.ClassCompletionResult{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	return domain.ClassCompletionResult{
		CreditsEarned:    earned,
		InstructorCredit: instructor.Credits,
	}, nil
}

func (s *ClassService) EnrolledClasses(ctx context.Context, userID uint) ([]domain.Class, error) {
	classes, err := s.repo.FindByStudentID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStudentID -> %w", err)
	}

	return classes, nil
}

func (s *ClassService) CreatedClasses(ctx context.Context, instructorID uint) ([]domain.Class, error) {
	classes, err := s.repo.FindByInstructorID(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByInstructorID -> %w", err)
	}

	return classes, nil
}

// Roster lists enrolled students. Only the instructor may see it.
func (s *ClassService) Roster(ctx context.Context, instructorID, classID uint) ([]domain.User, error) {
	class, err := s.repo.FindByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if class.InstructorID != instructorID {
		return nil, ErrNotClassInstructor
	}

	roster, err := s.repo.Roster(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Roster -> %w", err)
	}

	return roster, nil
}

// CreatePost publishes a message on the class wall. Instructor and enrolled
// students may post.
func (s *ClassService) CreatePost(ctx context.Context, post domain.ClassPost) (domain.ClassPost, error) {
	class, err := s.repo.FindByID(ctx, post.ClassID)
	if err != nil {
		return domain.ClassPost{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if class.InstructorID != post.UserID && !class.IsEnrolled(post.UserID) {
		return domain.ClassPost{}, ErrNotClassMember
	}

	created, err := s.postRepo.CreatePost(ctx, post)
	if err != nil {
		return domain.ClassPost{}, fmt.Errorf("s.postRepo.CreatePost -> %w", err)
	}

	return created, nil
}

func (s *ClassService) ListPosts(ctx context.Context, userID, classID uint) ([]domain.ClassPost, error) {
	class, err := s.repo.FindByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if class.InstructorID != userID && !class.IsEnrolled(userID) {
		return nil, ErrNotClassMember
	}

	posts, err := s.postRepo.FindPostsByClassID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("s.postRepo.FindPostsByClassID -> %w", err)
	}

	return posts, nil
}

func (s *ClassService) ReactToPost(ctx context.Context, userID, classID, postID uint, reaction domain.ReactionKind) (domain.ClassPost, error) {
	class, err := s.repo.FindByID(ctx, classID)
	if err != nil {
		return domain.ClassPost{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if class.InstructorID != userID && !class.IsEnrolled(userID) {
		return domain.ClassPost{}, ErrNotClassMember
	}

	post, err := s.postRepo.ReactToPost(ctx, postID, reaction)
	if err != nil {
		return domain.ClassPost{}, fmt.Errorf("s.postRepo.ReactToPost -> %w", err)
	}

	return post, nil
}
