package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var (
	ErrBookingNotFound     = repository.ErrBookingNotFound
	ErrInsufficientCredits = repository.ErrInsufficientCredits
	ErrBookingConflict     = repository.ErrBookingConflict

	ErrSelfBooking           = errors.New("cannot book a session with yourself")
	ErrNotBookingTeacher     = errors.New("only the teacher can respond to this booking")
	ErrNotBookingLearner     = errors.New("only the learner can cancel this booking")
	ErrNotBookingParticipant = errors.New("not a participant of this booking")
)

// sessionCreditCost is the flat price of a one-on-one session.
const sessionCreditCost = 1

type BookingRepository interface {
	CreateWithHold(ctx context.Context, booking domain.Booking) (domain.Booking, error)
	FindByID(ctx context.Context, id uint) (domain.Booking, error)
	FindByLearnerID(ctx context.Context, learnerID uint) ([]domain.Booking, error)
	FindByTeacherID(ctx context.Context, teacherID uint) ([]domain.Booking, error)
	Accept(ctx context.Context, id uint, teacherResponse, meetingLink string) error
	RejectWithRefund(ctx context.Context, booking domain.Booking, teacherResponse string) error
	CompleteWithTransfer(ctx context.Context, booking domain.Booking, meetingNotes string) error
	CancelWithRefund(ctx context.Context, booking domain.Booking) error
	StatsByUser(ctx context.Context, userID uint) (domain.BookingStats, error)
}

type BookingUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type BookingSkillRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Skill, error)
}

type BookingClassRepository interface {
	AddStudentIfAbsent(ctx context.Context, classID, userID uint) error
}

type BookingService struct {
	repo      BookingRepository
	userRepo  BookingUserRepository
	skillRepo BookingSkillRepository
	classRepo BookingClassRepository
}

func NewBookingService(repo BookingRepository, userRepo BookingUserRepository, skillRepo BookingSkillRepository, classRepo BookingClassRepository) *BookingService {
	return &BookingService{
		repo:      repo,
		userRepo:  userRepo,
		skillRepo: skillRepo,
		classRepo: classRepo,
	}
}

// CreateBooking validates the request and places the learner's credit on
// hold. The debit and the insert commit together, so a failed insert never
// leaves a dangling hold.
func (s *BookingService) CreateBooking(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	learner, err := s.userRepo.FindByID(ctx, booking.LearnerID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if learner.Credits < sessionCreditCost {
		return domain.Booking{}, ErrInsufficientCredits
	}

	if _, err = s.userRepo.FindByID(ctx, booking.TeacherID); err != nil {
		return domain.Booking{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if _, err = s.skillRepo.FindByID(ctx, booking.SkillID); err != nil {
		return domain.Booking{}, fmt.Errorf("s.skillRepo.FindByID -> %w", err)
	}

	if booking.LearnerID == booking.TeacherID {
		return domain.Booking{}, ErrSelfBooking
	}

	booking.Status = domain.BookingPending
	booking.CreditCost = sessionCreditCost

	created, err := s.repo.CreateWithHold(ctx, booking)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.CreateWithHold -> %w", err)
	}

	return created, nil
}

func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID uint) (domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !booking.IsParticipant(userID) {
		return domain.Booking{}, ErrNotBookingParticipant
	}

	return booking, nil
}

func (s *BookingService) ListAsLearner(ctx context.Context, learnerID uint) ([]domain.Booking, error) {
	bookings, err := s.repo.FindByLearnerID(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByLearnerID -> %w", err)
	}

	return bookings, nil
}

func (s *BookingService) ListAsTeacher(ctx context.Context, teacherID uint) ([]domain.Booking, error) {
	bookings, err := s.repo.FindByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByTeacherID -> %w", err)
	}

	return bookings, nil
}

// AcceptBooking confirms a pending request. A meeting link is generated when
// the teacher does not provide one, and a linked class gains the learner on
// its roster without an extra credit hold. A classID supplied at acceptance
// wins over the one fixed at creation.
func (s *BookingService) AcceptBooking(ctx context.Context, teacherID, bookingID uint, teacherResponse, meetingLink string, classID *uint) (domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if booking.TeacherID != teacherID {
		return domain.Booking{}, ErrNotBookingTeacher
	}
	if !booking.Status.CanTransitionTo(domain.BookingAccepted) {
		return domain.Booking{}, &domain.StatusConflictError{Current: booking.Status}
	}

	if meetingLink == "" {
		meetingLink = "https://meet.skillswap.io/" + uuid.NewString()
	}

	if err = s.repo.Accept(ctx, bookingID, teacherResponse, meetingLink); err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.Accept -> %w", err)
	}

	enrollClassID := booking.ClassID
	if classID != nil {
		enrollClassID = classID
	}
	if enrollClassID != nil {
		if err = s.classRepo.AddStudentIfAbsent(ctx, *enrollClassID, booking.LearnerID); err != nil {
			return domain.Booking{}, fmt.Errorf("s.classRepo.AddStudentIfAbsent -> %w", err)
		}
	}

	accepted, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return accepted, nil
}

// RejectBooking declines a pending request and releases the learner's hold
// back to their available balance.
func (s *BookingService) RejectBooking(ctx context.Context, teacherID, bookingID uint, teacherResponse string) (domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if booking.TeacherID != teacherID {
		return domain.Booking{}, ErrNotBookingTeacher
	}
	if !booking.Status.CanTransitionTo(domain.BookingRejected) {
		return domain.Booking{}, &domain.StatusConflictError{Current: booking.Status}
	}

	if err = s.repo.RejectWithRefund(ctx, booking, teacherResponse); err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.RejectWithRefund -> %w", err)
	}

	rejected, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return rejected, nil
}

// CompleteBooking settles an accepted session: the learner's held credit is
// consumed and the teacher earns it. Either participant may mark the session
// complete.
func (s *BookingService) CompleteBooking(ctx context.Context, userID, bookingID uint, meetingNotes string) (domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !booking.IsParticipant(userID) {
		return domain.Booking{}, ErrNotBookingParticipant
	}
	if !booking.Status.CanTransitionTo(domain.BookingCompleted) {
		return domain.Booking{}, &domain.StatusConflictError{Current: booking.Status}
	}

	if err = s.repo.CompleteWithTransfer(ctx, booking, meetingNotes); err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.CompleteWithTransfer -> %w", err)
	}

	completed, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return completed, nil
}

// CancelBooking lets the learner withdraw a pending or accepted request and
// reclaims the held credit.
func (s *BookingService) CancelBooking(ctx context.Context, learnerID, bookingID uint) (domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if booking.LearnerID != learnerID {
		return domain.Booking{}, ErrNotBookingLearner
	}
	if !booking.Status.CanTransitionTo(domain.BookingCancelled) {
		return domain.Booking{}, &domain.StatusConflictError{Current: booking.Status}
	}

	if err = s.repo.CancelWithRefund(ctx, booking); err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.CancelWithRefund -> %w", err)
	}

	cancelled, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return cancelled, nil
}

func (s *BookingService) GetStats(ctx context.Context, userID uint) (domain.BookingStats, error) {
	stats, err := s.repo.StatsByUser(ctx, userID)
	if err != nil {
		return domain.BookingStats{}, fmt.Errorf("s.repo.StatsByUser -> %w", err)
	}

	return stats, nil
}
