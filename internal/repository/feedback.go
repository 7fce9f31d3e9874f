package repository

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var (
	ErrFeedbackExists    = dao.ErrFeedbackExists
	ErrClassPostNotFound = dao.ErrClassPostNotFound
)

type FeedbackDAO interface {
	Insert(ctx context.Context, feedback dao.Feedback) (dao.Feedback, error)
	ExistsForClassAndStudent(ctx context.Context, classID, studentID uint) (bool, error)
	FindByClassID(ctx context.Context, classID uint) ([]dao.Feedback, error)
	FindByInstructorID(ctx context.Context, instructorID uint) ([]dao.Feedback, error)
	InsertPost(ctx context.Context, post dao.ClassPost) (dao.ClassPost, error)
	FindPostsByClassID(ctx context.Context, classID uint) ([]dao.ClassPost, error)
	ReactToPost(ctx context.Context, postID uint, reaction string) (dao.ClassPost, error)
}

type FeedbackRepository struct {
	dao FeedbackDAO
}

func NewFeedbackRepository(dao FeedbackDAO) *FeedbackRepository {
	return &FeedbackRepository{
		dao: dao,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	created, err := r.dao.Insert(ctx, dao.Feedback{
		ClassID:      feedback.ClassID,
		StudentID:    feedback.StudentID,
		InstructorID: feedback.InstructorID,
		Rating:       feedback.Rating,
		Comments:     feedback.Comments,
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return feedbackDaoToDomain(created), nil
}

func (r *FeedbackRepository) ExistsForClassAndStudent(ctx context.Context, classID, studentID uint) (bool, error) {
	exists, err := r.dao.ExistsForClassAndStudent(ctx, classID, studentID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsForClassAndStudent -> %w", err)
	}

	return exists, nil
}

func (r *FeedbackRepository) FindByClassID(ctx context.Context, classID uint) ([]domain.Feedback, error) {
	feedbacks, err := r.dao.FindByClassID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByClassID -> %w", err)
	}

	return feedbacksDaoToDomain(feedbacks), nil
}

func (r *FeedbackRepository) FindByInstructorID(ctx context.Context, instructorID uint) ([]domain.Feedback, error) {
	feedbacks, err := r.dao.FindByInstructorID(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByInstructorID -> %w", err)
	}

	return feedbacksDaoToDomain(feedbacks), nil
}

func (r *FeedbackRepository) CreatePost(ctx context.Context, post domain.ClassPost) (domain.ClassPost, error) {
	created, err := r.dao.InsertPost(ctx, dao.ClassPost{
		ClassID: post.ClassID,
		UserID:  post.UserID,
		Message: post.Message,
	})
	if err != nil {
		return domain.ClassPost{}, fmt.Errorf("r.dao.InsertPost -> %w", err)
	}

	return classPostDaoToDomain(created), nil
}

func (r *FeedbackRepository) FindPostsByClassID(ctx context.Context, classID uint) ([]domain.ClassPost, error) {
	posts, err := r.dao.FindPostsByClassID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPostsByClassID -> %w", err)
	}

	result := make([]domain.ClassPost, len(posts))
	for i, p := range posts {
		result[i] = classPostDaoToDomain(p)
	}

	return result, nil
}

func (r *FeedbackRepository) ReactToPost(ctx context.Context, postID uint, reaction domain.ReactionKind) (domain.ClassPost, error) {
	post, err := r.dao.ReactToPost(ctx, postID, string(reaction))
	if err != nil {
		return domain.ClassPost{}, fmt.Errorf("r.dao.ReactToPost -> %w", err)
	}

	return classPostDaoToDomain(post), nil
}

func feedbackDaoToDomain(f dao.Feedback) domain.Feedback {
	feedback := domain.Feedback{
		ID:           f.ID,
		ClassID:      f.ClassID,
		StudentID:    f.StudentID,
		InstructorID: f.InstructorID,
		Rating:       f.Rating,
		Comments:     f.Comments,
		CreatedAt:    f.CreatedAt,
	}

	if f.Class.ID != 0 {
		class := classDaoToDomain(f.Class)
		feedback.Class = &class
	}
	if f.Student.ID != 0 {
		student := userDaoToDomain(f.Student)
		feedback.Student = &student
	}
	if f.Instructor.ID != 0 {
		instructor := userDaoToDomain(f.Instructor)
		feedback.Instructor = &instructor
	}

	return feedback
}

func feedbacksDaoToDomain(feedbacks []dao.Feedback) []domain.Feedback {
	result := make([]domain.Feedback, len(feedbacks))
	for i, f := range feedbacks {
		result[i] = feedbackDaoToDomain(f)
	}

	return result
}

func classPostDaoToDomain(p dao.ClassPost) domain.ClassPost {
	post := domain.ClassPost{
		ID:      p.ID,
		ClassID: p.ClassID,
		UserID:  p.UserID,
		Message: p.Message,
		Reactions: domain.Reactions{
			Like:  p.Likes,
			Heart: p.Hearts,
			Laugh: p.Laughs,
			Wow:   p.Wows,
		},
		CreatedAt: p.CreatedAt,
	}

	if p.Author.ID != 0 {
		author := userDaoToDomain(p.Author)
		post.Author = &author
	}

	return post
}
