package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrBookingConflict     = errors.New("booking status changed concurrently")
)

type Booking struct {
	ID uint `gorm:"primaryKey"`

	LearnerID uint `gorm:"not null;index"`
	Learner   User `gorm:"foreignKey:LearnerID"`
	TeacherID uint `gorm:"not null;index"`
	Teacher   User `gorm:"foreignKey:TeacherID"`
	SkillID   uint `gorm:"not null"`
	Skill     Skill
	ClassID   *uint

	Message       string `gorm:"size:500"`
	PreferredDate *time.Time
	PreferredTime string
	Duration      string `gorm:"not null;default:1hour"`

	Status     string `gorm:"not null;default:pending;index"`
	CreditCost int    `gorm:"not null;default:1"`

	TeacherResponse string `gorm:"size:500"`
	MeetingLink     string
	MeetingNotes    string `gorm:"size:1000"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BookingDAO struct {
	db *gorm.DB
}

func NewBookingDAO(db *gorm.DB) *BookingDAO {
	return &BookingDAO{
		db: db,
	}
}

// InsertWithHold creates the booking and moves the learner's credit into
// pending in one transaction. The balance guard runs inside the UPDATE, so
// two concurrent creations cannot double-spend the same credit.
func (d *BookingDAO) InsertWithHold(ctx context.Context, booking Booking) (Booking, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&User{}).
			Where("id = ? AND credits >= ?", booking.LearnerID, booking.CreditCost).
			Updates(map[string]any{
				"credits":         gorm.Expr("credits - ?", booking.CreditCost),
				"pending_credits": gorm.Expr("pending_credits + ?", booking.CreditCost),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientCredits
		}

		return tx.Create(&booking).Error
	})
	if err != nil {
		return Booking{}, err
	}

	return booking, nil
}

func (d *BookingDAO) FindByID(ctx context.Context, id uint) (Booking, error) {
	var booking Booking

	result := d.db.WithContext(ctx).
		Preload("Learner").
		Preload("Teacher").
		Preload("Skill").
		First(&booking, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Booking{}, ErrBookingNotFound
		}

		return Booking{}, result.Error
	}

	return booking, nil
}

func (d *BookingDAO) FindByLearnerID(ctx context.Context, learnerID uint) ([]Booking, error) {
	var bookings []Booking

	err := d.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Skill").
		Where("learner_id = ?", learnerID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (d *BookingDAO) FindByTeacherID(ctx context.Context, teacherID uint) ([]Booking, error) {
	var bookings []Booking

	err := d.db.WithContext(ctx).
		Preload("Learner").
		Preload("Skill").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// Accept transitions pending -> accepted. No credit moves on acceptance.
// The status predicate in the WHERE clause is the concurrency backstop:
// a racing transition loses and surfaces as ErrBookingConflict.
func (d *BookingDAO) Accept(ctx context.Context, id uint, teacherResponse, meetingLink string) error {
	result := d.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND status = ?", id, "pending").
		Updates(map[string]any{
			"status":           "accepted",
			"teacher_response": teacherResponse,
			"meeting_link":     meetingLink,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingConflict
	}

	return nil
}

// RejectWithRefund transitions pending -> rejected and returns the held
// credit to the learner, atomically.
func (d *BookingDAO) RejectWithRefund(ctx context.Context, id, learnerID uint, cost int, teacherResponse string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", id, "pending").
			Updates(map[string]any{
				"status":           "rejected",
				"teacher_response": teacherResponse,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBookingConflict
		}

		return refundHold(tx, learnerID, cost)
	})
}

// CompleteWithTransfer transitions accepted -> completed and moves the held
// credit from the learner's pending balance to the teacher's available
// balance. This is the only transition where a credit changes owner.
func (d *BookingDAO) CompleteWithTransfer(ctx context.Context, id, learnerID, teacherID uint, cost int, meetingNotes string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]any{"status": "completed"}
		if meetingNotes != "" {
			fields["meeting_notes"] = meetingNotes
		}

		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", id, "accepted").
			Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBookingConflict
		}

		err := tx.Model(&User{}).
			Where("id = ?", learnerID).
			Update("pending_credits", gorm.Expr("pending_credits - ?", cost)).Error
		if err != nil {
			return err
		}

		return tx.Model(&User{}).
			Where("id = ?", teacherID).
			Update("credits", gorm.Expr("credits + ?", cost)).Error
	})
}

// CancelWithRefund transitions pending/accepted -> cancelled and refunds
// the learner's hold.
func (d *BookingDAO) CancelWithRefund(ctx context.Context, id, learnerID uint, cost int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND status IN ?", id, []string{"pending", "accepted"}).
			Update("status", "cancelled")
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBookingConflict
		}

		return refundHold(tx, learnerID, cost)
	})
}

func refundHold(tx *gorm.DB, userID uint, cost int) error {
	return tx.Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"credits":         gorm.Expr("credits + ?", cost),
			"pending_credits": gorm.Expr("pending_credits - ?", cost),
		}).Error
}

// CountByRole counts bookings where the user appears in the given role
// column ("learner_id" or "teacher_id"), optionally filtered by status.
func (d *BookingDAO) CountByRole(ctx context.Context, roleColumn string, userID uint, status string) (int64, error) {
	query := d.db.WithContext(ctx).Model(&Booking{}).Where(roleColumn+" = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
