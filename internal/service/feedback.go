package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var (
	ErrFeedbackExists = repository.ErrFeedbackExists
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	ExistsForClassAndStudent(ctx context.Context, classID, studentID uint) (bool, error)
	FindByClassID(ctx context.Context, classID uint) ([]domain.Feedback, error)
	FindByInstructorID(ctx context.Context, instructorID uint) ([]domain.Feedback, error)
}

type FeedbackClassRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Class, error)
}

type FeedbackService struct {
	repo      FeedbackRepository
	classRepo FeedbackClassRepository
}

func NewFeedbackService(repo FeedbackRepository, classRepo FeedbackClassRepository) *FeedbackService {
	return &FeedbackService{
		repo:      repo,
		classRepo: classRepo,
	}
}

// SubmitFeedback records a student's rating for a class they attended. One
// submission per student per class.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return domain.Feedback{}, ErrInvalidRating
	}

	class, err := s.classRepo.FindByID(ctx, feedback.ClassID)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.classRepo.FindByID -> %w", err)
	}

	if !class.IsEnrolled(feedback.StudentID) {
		return domain.Feedback{}, ErrNotClassMember
	}

	exists, err := s.repo.ExistsForClassAndStudent(ctx, feedback.ClassID, feedback.StudentID)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.ExistsForClassAndStudent -> %w", err)
	}
	if exists {
		return domain.Feedback{}, ErrFeedbackExists
	}

	feedback.InstructorID = class.InstructorID

	created, err := s.repo.Create(ctx, feedback)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FeedbackService) ForClass(ctx context.Context, classID uint) ([]domain.Feedback, error) {
	if _, err := s.classRepo.FindByID(ctx, classID); err != nil {
		return nil, fmt.Errorf("s.classRepo.FindByID -> %w", err)
	}

	feedbacks, err := s.repo.FindByClassID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByClassID -> %w", err)
	}

	return feedbacks, nil
}

func (s *FeedbackService) ForInstructor(ctx context.Context, instructorID uint) ([]domain.Feedback, error) {
	feedbacks, err := s.repo.FindByInstructorID(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByInstructorID -> %w", err)
	}

	return feedbacks, nil
}
