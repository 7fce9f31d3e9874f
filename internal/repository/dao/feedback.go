package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrFeedbackExists    = errors.New("feedback already submitted for this class")
	ErrClassPostNotFound = errors.New("class post not found")
)

type Feedback struct {
	ID uint `gorm:"primaryKey"`

	ClassID uint  `gorm:"not null;uniqueIndex:idx_feedback_class_student"`
	Class   Class `gorm:"foreignKey:ClassID"`

	StudentID uint `gorm:"not null;uniqueIndex:idx_feedback_class_student"`
	Student   User `gorm:"foreignKey:StudentID"`

	InstructorID uint `gorm:"not null;index"`
	Instructor   User `gorm:"foreignKey:InstructorID"`

	Rating   int    `gorm:"not null"`
	Comments string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type ClassPost struct {
	ID uint `gorm:"primaryKey"`

	ClassID uint `gorm:"not null;index"`
	UserID  uint `gorm:"not null"`
	Author  User `gorm:"foreignKey:UserID"`

	Message string `gorm:"not null"`

	Likes  int `gorm:"not null;default:0"`
	Hearts int `gorm:"not null;default:0"`
	Laughs int `gorm:"not null;default:0"`
	Wows   int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
}

type FeedbackDAO struct {
	db *gorm.DB
}

func NewFeedbackDAO(db *gorm.DB) *FeedbackDAO {
	return &FeedbackDAO{
		db: db,
	}
}

func (d *FeedbackDAO) Insert(ctx context.Context, feedback Feedback) (Feedback, error) {
	result := d.db.WithContext(ctx).Create(&feedback)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Feedback{}, ErrFeedbackExists
		}

		return Feedback{}, result.Error
	}

	return feedback, nil
}

func (d *FeedbackDAO) ExistsForClassAndStudent(ctx context.Context, classID, studentID uint) (bool, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Feedback{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (d *FeedbackDAO) FindByClassID(ctx context.Context, classID uint) ([]Feedback, error) {
	var feedbacks []Feedback

	err := d.db.WithContext(ctx).
		Preload("Student").
		Preload("Instructor").
		Where("class_id = ?", classID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}

	return feedbacks, nil
}

func (d *FeedbackDAO) FindByInstructorID(ctx context.Context, instructorID uint) ([]Feedback, error) {
	var feedbacks []Feedback

	err := d.db.WithContext(ctx).
		Preload("Student").
		Preload("Class").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}

	return feedbacks, nil
}

func (d *FeedbackDAO) InsertPost(ctx context.Context, post ClassPost) (ClassPost, error) {
	result := d.db.WithContext(ctx).Create(&post)
	if result.Error != nil {
		return ClassPost{}, result.Error
	}

	return post, nil
}

func (d *FeedbackDAO) FindPostsByClassID(ctx context.Context, classID uint) ([]ClassPost, error) {
	var posts []ClassPost

	err := d.db.WithContext(ctx).
		Preload("Author").
		Where("class_id = ?", classID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// reactionColumns whitelists the counter columns a reaction may increment.
var reactionColumns = map[string]string{
	"like":  "likes",
	"heart": "hearts",
	"laugh": "laughs",
	"wow":   "wows",
}

func (d *FeedbackDAO) ReactToPost(ctx context.Context, postID uint, reaction string) (ClassPost, error) {
	column, ok := reactionColumns[reaction]
	if !ok {
		return ClassPost{}, errors.New("unknown reaction: " + reaction)
	}

	result := d.db.WithContext(ctx).Model(&ClassPost{}).
		Where("id = ?", postID).
		Update(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return ClassPost{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ClassPost{}, ErrClassPostNotFound
	}

	var post ClassPost
	if err := d.db.WithContext(ctx).Preload("Author").First(&post, postID).Error; err != nil {
		return ClassPost{}, err
	}

	return post, nil
}
