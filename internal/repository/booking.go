package repository

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var (
	ErrBookingNotFound     = dao.ErrBookingNotFound
	ErrInsufficientCredits = dao.ErrInsufficientCredits
	ErrBookingConflict     = dao.ErrBookingConflict
)

type BookingDAO interface {
	InsertWithHold(ctx context.Context, booking dao.Booking) (dao.Booking, error)
	FindByID(ctx context.Context, id uint) (dao.Booking, error)
	FindByLearnerID(ctx context.Context, learnerID uint) ([]dao.Booking, error)
	FindByTeacherID(ctx context.Context, teacherID uint) ([]dao.Booking, error)
	Accept(ctx context.Context, id uint, teacherResponse, meetingLink string) error
	RejectWithRefund(ctx context.Context, id, learnerID uint, cost int, teacherResponse string) error
	CompleteWithTransfer(ctx context.Context, id, learnerID, teacherID uint, cost int, meetingNotes string) error
	CancelWithRefund(ctx context.Context, id, learnerID uint, cost int) error
	CountByRole(ctx context.Context, roleColumn string, userID uint, status string) (int64, error)
}

type BookingRepository struct {
	dao BookingDAO
}

func NewBookingRepository(dao BookingDAO) *BookingRepository {
	return &BookingRepository{
		dao: dao,
	}
}

func (r *BookingRepository) CreateWithHold(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	created, err := r.dao.InsertWithHold(ctx, bookingDomainToDao(booking))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.InsertWithHold -> %w", err)
	}

	return bookingDaoToDomain(created), nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint) (domain.Booking, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return bookingDaoToDomain(found), nil
}

func (r *BookingRepository) FindByLearnerID(ctx context.Context, learnerID uint) ([]domain.Booking, error) {
	bookings, err := r.dao.FindByLearnerID(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByLearnerID -> %w", err)
	}

	return bookingsDaoToDomain(bookings), nil
}

func (r *BookingRepository) FindByTeacherID(ctx context.Context, teacherID uint) ([]domain.Booking, error) {
	bookings, err := r.dao.FindByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTeacherID -> %w", err)
	}

	return bookingsDaoToDomain(bookings), nil
}

func (r *BookingRepository) Accept(ctx context.Context, id uint, teacherResponse, meetingLink string) error {
	if err := r.dao.Accept(ctx, id, teacherResponse, meetingLink); err != nil {
		return fmt.Errorf("r.dao.Accept -> %w", err)
	}

	return nil
}

func (r *BookingRepository) RejectWithRefund(ctx context.Context, booking domain.Booking, teacherResponse string) error {
	err := r.dao.RejectWithRefund(ctx, booking.ID, booking.LearnerID, booking.CreditCost, teacherResponse)
	if err != nil {
		return fmt.Errorf("r.dao.RejectWithRefund -> %w", err)
	}

	return nil
}

func (r *BookingRepository) CompleteWithTransfer(ctx context.Context, booking domain.Booking, meetingNotes string) error {
	err := r.dao.CompleteWithTransfer(ctx, booking.ID, booking.LearnerID, booking.TeacherID, booking.CreditCost, meetingNotes)
	if err != nil {
		return fmt.Errorf("r.dao.CompleteWithTransfer -> %w", err)
	}

	return nil
}

func (r *BookingRepository) CancelWithRefund(ctx context.Context, booking domain.Booking) error {
	err := r.dao.CancelWithRefund(ctx, booking.ID, booking.LearnerID, booking.CreditCost)
	if err != nil {
		return fmt.Errorf("r.dao.CancelWithRefund -> %w", err)
	}

	return nil
}

func (r *BookingRepository) StatsByUser(ctx context.Context, userID uint) (domain.BookingStats, error) {
	var stats domain.BookingStats

	asLearner, err := r.roleStats(ctx, "learner_id", userID)
	if err != nil {
		return domain.BookingStats{}, err
	}
	stats.AsLearner = asLearner

	asTeacher, err := r.roleStats(ctx, "teacher_id", userID)
	if err != nil {
		return domain.BookingStats{}, err
	}
	stats.AsTeacher = asTeacher

	return stats, nil
}

func (r *BookingRepository) roleStats(ctx context.Context, roleColumn string, userID uint) (domain.RoleBookingStats, error) {
	var stats domain.RoleBookingStats

	counts := []struct {
		status string
		target *int64
	}{
		{"", &stats.Total},
		{string(domain.BookingPending), &stats.Pending},
		{string(domain.BookingAccepted), &stats.Accepted},
		{string(domain.BookingCompleted), &stats.Completed},
	}

	for _, c := range counts {
		count, err := r.dao.CountByRole(ctx, roleColumn, userID, c.status)
		if err != nil {
			return domain.RoleBookingStats{}, fmt.Errorf("r.dao.CountByRole -> %w", err)
		}
		*c.target = count
	}

	return stats, nil
}

func bookingDomainToDao(b domain.Booking) dao.Booking {
	return dao.Booking{
		ID:              b.ID,
		LearnerID:       b.LearnerID,
		TeacherID:       b.TeacherID,
		SkillID:         b.SkillID,
		ClassID:         b.ClassID,
		Message:         b.Message,
		PreferredDate:   b.PreferredDate,
		PreferredTime:   b.PreferredTime,
		Duration:        string(b.Duration),
		Status:          string(b.Status),
		CreditCost:      b.CreditCost,
		TeacherResponse: b.TeacherResponse,
		MeetingLink:     b.MeetingLink,
		MeetingNotes:    b.MeetingNotes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func bookingDaoToDomain(b dao.Booking) domain.Booking {
	booking := domain.Booking{
		ID:              b.ID,
		LearnerID:       b.LearnerID,
		TeacherID:       b.TeacherID,
		SkillID:         b.SkillID,
		ClassID:         b.ClassID,
		Message:         b.Message,
		PreferredDate:   b.PreferredDate,
		PreferredTime:   b.PreferredTime,
		Duration:        domain.SessionDuration(b.Duration),
		Status:          domain.BookingStatus(b.Status),
		CreditCost:      b.CreditCost,
		TeacherResponse: b.TeacherResponse,
		MeetingLink:     b.MeetingLink,
		MeetingNotes:    b.MeetingNotes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.Learner.ID != 0 {
		learner := userDaoToDomain(b.Learner)
		booking.Learner = &learner
	}
	if b.Teacher.ID != 0 {
		teacher := userDaoToDomain(b.Teacher)
		booking.Teacher = &teacher
	}
	if b.Skill.ID != 0 {
		skill := skillDaoToDomain(b.Skill)
		booking.Skill = &skill
	}

	return booking
}

func bookingsDaoToDomain(bookings []dao.Booking) []domain.Booking {
	result := make([]domain.Booking, len(bookings))
	for i, b := range bookings {
		result[i] = bookingDaoToDomain(b)
	}

	return result
}
