package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

// ledger is a shared in-memory fixture mirroring the transactional storage
// semantics: holds, refunds and transfers move credits the same way the DAO
// does.
type ledger struct {
	users    map[uint]*domain.User
	skills   map[uint]domain.Skill
	bookings map[uint]*domain.Booking
	rosters  map[uint][]uint
	nextID   uint
}

func newLedger() *ledger {
	return &ledger{
		users:    make(map[uint]*domain.User),
		skills:   make(map[uint]domain.Skill),
		bookings: make(map[uint]*domain.Booking),
		rosters:  make(map[uint][]uint),
	}
}

func (l *ledger) addUser(id uint, credits int) *domain.User {
	user := &domain.User{ID: id, Credits: credits, Role: domain.RoleLearner}
	l.users[id] = user

	return user
}

type ledgerBookingRepo struct {
	l *ledger
}

func (r *ledgerBookingRepo) CreateWithHold(_ context.Context, booking domain.Booking) (domain.Booking, error) {
	learner := r.l.users[booking.LearnerID]
	if learner.Credits < booking.CreditCost {
		return domain.Booking{}, repository.ErrInsufficientCredits
	}
	learner.Credits -= booking.CreditCost
	learner.PendingCredits += booking.CreditCost

	r.l.nextID++
	booking.ID = r.l.nextID
	r.l.bookings[booking.ID] = &booking

	return booking, nil
}

func (r *ledgerBookingRepo) FindByID(_ context.Context, id uint) (domain.Booking, error) {
	booking, ok := r.l.bookings[id]
	if !ok {
		return domain.Booking{}, repository.ErrBookingNotFound
	}

	return *booking, nil
}

func (r *ledgerBookingRepo) FindByLearnerID(_ context.Context, learnerID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for _, b := range r.l.bookings {
		if b.LearnerID == learnerID {
			bookings = append(bookings, *b)
		}
	}

	return bookings, nil
}

func (r *ledgerBookingRepo) FindByTeacherID(_ context.Context, teacherID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for _, b := range r.l.bookings {
		if b.TeacherID == teacherID {
			bookings = append(bookings, *b)
		}
	}

	return bookings, nil
}

func (r *ledgerBookingRepo) Accept(_ context.Context, id uint, teacherResponse, meetingLink string) error {
	booking := r.l.bookings[id]
	if booking.Status != domain.BookingPending {
		return repository.ErrBookingConflict
	}
	booking.Status = domain.BookingAccepted
	booking.TeacherResponse = teacherResponse
	booking.MeetingLink = meetingLink

	return nil
}

func (r *ledgerBookingRepo) RejectWithRefund(_ context.Context, booking domain.Booking, teacherResponse string) error {
	stored := r.l.bookings[booking.ID]
	if stored.Status != domain.BookingPending {
		return repository.ErrBookingConflict
	}
	stored.Status = domain.BookingRejected
	stored.TeacherResponse = teacherResponse

	learner := r.l.users[stored.LearnerID]
	learner.Credits += stored.CreditCost
	learner.PendingCredits -= stored.CreditCost

	return nil
}

func (r *ledgerBookingRepo) CompleteWithTransfer(_ context.Context, booking domain.Booking, meetingNotes string) error {
	stored := r.l.bookings[booking.ID]
	if stored.Status != domain.BookingAccepted {
		return repository.ErrBookingConflict
	}
	stored.Status = domain.BookingCompleted
	stored.MeetingNotes = meetingNotes

	r.l.users[stored.LearnerID].PendingCredits -= stored.CreditCost
	r.l.users[stored.TeacherID].Credits += stored.CreditCost

	return nil
}

func (r *ledgerBookingRepo) CancelWithRefund(_ context.Context, booking domain.Booking) error {
	stored := r.l.bookings[booking.ID]
	if stored.Status != domain.BookingPending && stored.Status != domain.BookingAccepted {
		return repository.ErrBookingConflict
	}
	stored.Status = domain.BookingCancelled

	learner := r.l.users[stored.LearnerID]
	learner.Credits += stored.CreditCost
	learner.PendingCredits -= stored.CreditCost

	return nil
}

func (r *ledgerBookingRepo) StatsByUser(_ context.Context, userID uint) (domain.BookingStats, error) {
	var stats domain.BookingStats
	for _, b := range r.l.bookings {
		if b.LearnerID == userID {
			tally(&stats.AsLearner, b.Status)
		}
		if b.TeacherID == userID {
			tally(&stats.AsTeacher, b.Status)
		}
	}

	return stats, nil
}

func tally(stats *domain.RoleBookingStats, status domain.BookingStatus) {
	stats.Total++
	switch status {
	case domain.BookingPending:
		stats.Pending++
	case domain.BookingAccepted:
		stats.Accepted++
	case domain.BookingCompleted:
		stats.Completed++
	}
}

type ledgerUserRepo struct {
	l *ledger
}

func (r *ledgerUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.l.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return *user, nil
}

type ledgerSkillRepo struct {
	l *ledger
}

func (r *ledgerSkillRepo) FindByID(_ context.Context, id uint) (domain.Skill, error) {
	skill, ok := r.l.skills[id]
	if !ok {
		return domain.Skill{}, repository.ErrSkillNotFound
	}

	return skill, nil
}

type ledgerClassRepo struct {
	l *ledger
}

func (r *ledgerClassRepo) AddStudentIfAbsent(_ context.Context, classID, userID uint) error {
	for _, enrolled := range r.l.rosters[classID] {
		if enrolled == userID {
			return nil
		}
	}
	r.l.rosters[classID] = append(r.l.rosters[classID], userID)

	return nil
}

func newBookingService(l *ledger) *BookingService {
	return NewBookingService(
		&ledgerBookingRepo{l: l},
		&ledgerUserRepo{l: l},
		&ledgerSkillRepo{l: l},
		&ledgerClassRepo{l: l},
	)
}

func newBookingFixture(t *testing.T) (*ledger, *BookingService) {
	t.Helper()

	l := newLedger()
	l.addUser(1, 1)
	l.addUser(2, 5)
	l.skills[10] = domain.Skill{ID: 10, Title: "Go for beginners", UserID: 2}

	return l, newBookingService(l)
}

func TestCreateBookingHoldsOneCredit(t *testing.T) {
	l, svc := newBookingFixture(t)

	booking, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1,
		TeacherID: 2,
		SkillID:   10,
		Duration:  domain.Duration1Hour,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Equal(t, 1, booking.CreditCost)
	assert.Equal(t, 0, l.users[1].Credits)
	assert.Equal(t, 1, l.users[1].PendingCredits)
}

func TestCreateBookingRejectsZeroCredits(t *testing.T) {
	l, svc := newBookingFixture(t)
	l.users[1].Credits = 0

	_, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1,
		TeacherID: 2,
		SkillID:   10,
	})

	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Equal(t, 0, l.users[1].Credits)
	assert.Equal(t, 0, l.users[1].PendingCredits)
	assert.Empty(t, l.bookings)
}

func TestCreateBookingRejectsSelfBooking(t *testing.T) {
	l, svc := newBookingFixture(t)
	l.skills[11] = domain.Skill{ID: 11, UserID: 1}

	_, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1,
		TeacherID: 1,
		SkillID:   11,
	})

	assert.ErrorIs(t, err, ErrSelfBooking)
	assert.Equal(t, 1, l.users[1].Credits)
}

func TestCreateBookingRejectsUnknownTeacher(t *testing.T) {
	_, svc := newBookingFixture(t)

	_, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1,
		TeacherID: 99,
		SkillID:   10,
	})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAcceptBookingGeneratesMeetingLink(t *testing.T) {
	l, svc := newBookingFixture(t)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	accepted, err := svc.AcceptBooking(context.Background(), 2, created.ID, "See you there", "", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.BookingAccepted, accepted.Status)
	assert.True(t, strings.HasPrefix(accepted.MeetingLink, "https://meet.skillswap.io/"))
	// Acceptance moves no credits.
	assert.Equal(t, 0, l.users[1].Credits)
	assert.Equal(t, 1, l.users[1].PendingCredits)
	assert.Equal(t, 5, l.users[2].Credits)
}

func TestAcceptBookingKeepsSuppliedMeetingLink(t *testing.T) {
	_, svc := newBookingFixture(t)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	accepted, err := svc.AcceptBooking(context.Background(), 2, created.ID, "", "https://zoom.example.com/room", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://zoom.example.com/room", accepted.MeetingLink)
}

func TestAcceptBookingRequiresTeacher(t *testing.T) {
	_, svc := newBookingFixture(t)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	_, err = svc.AcceptBooking(context.Background(), 1, created.ID, "", "", nil)

	assert.ErrorIs(t, err, ErrNotBookingTeacher)
}

func TestAcceptBookingAppendsClassRosterOnce(t *testing.T) {
	l, svc := newBookingFixture(t)
	classID := uint(30)
	l.rosters[classID] = []uint{1}

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, ClassID: &classID, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	_, err = svc.AcceptBooking(context.Background(), 2, created.ID, "", "", nil)
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, l.rosters[classID])
}

func TestAcceptBookingPrefersRequestedClass(t *testing.T) {
	l, svc := newBookingFixture(t)
	stored := uint(30)
	requested := uint(31)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, ClassID: &stored, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	_, err = svc.AcceptBooking(context.Background(), 2, created.ID, "", "", &requested)
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, l.rosters[requested])
	assert.Empty(t, l.rosters[stored])
}

func TestAcceptBookingEnrollsClassFromRequestOnly(t *testing.T) {
	l, svc := newBookingFixture(t)
	classID := uint(40)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	_, err = svc.AcceptBooking(context.Background(), 2, created.ID, "", "", &classID)
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, l.rosters[classID])
}

func TestRejectBookingRefundsHold(t *testing.T) {
	l, svc := newBookingFixture(t)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	rejected, err := svc.RejectBooking(context.Background(), 2, created.ID, "Fully booked this week")
	require.NoError(t, err)

	assert.Equal(t, domain.BookingRejected, rejected.Status)
	assert.Equal(t, 1, l.users[1].Credits)
	assert.Equal(t, 0, l.users[1].PendingCredits)
	assert.Equal(t, 5, l.users[2].Credits)
}

func TestCompleteBookingTransfersCredit(t *testing.T) {
	l, svc := newBookingFixture(t)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	_, err = svc.AcceptBooking(context.Background(), 2, created.ID, "", "", nil)
	require.NoError(t, err)

	completed, err := svc.CompleteBooking(context.Background(), 1, created.ID, "Covered goroutines")
	require.NoError(t, err)

	assert.Equal(t, domain.BookingCompleted, completed.Status)
	assert.Equal(t, 0, l.users[1].Credits)
	assert.Equal(t, 0, l.users[1].PendingCredits)
	assert.Equal(t, 6, l.users[2].Credits)
}

func TestCompleteBookingRequiresAcceptedStatus(t *testing.T) {
	_, svc := newBookingFixture(t)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	_, err = svc.CompleteBooking(context.Background(), 1, created.ID, "")

	var conflict *domain.StatusConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.BookingPending, conflict.Current)
}

func TestCancelBookingRefundsFromAccepted(t *testing.T) {
	l, svc := newBookingFixture(t)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	_, err = svc.AcceptBooking(context.Background(), 2, created.ID, "", "", nil)
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(context.Background(), 1, created.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	assert.Equal(t, 1, l.users[1].Credits)
	assert.Equal(t, 0, l.users[1].PendingCredits)
}

func TestCancelBookingRequiresLearner(t *testing.T) {
	_, svc := newBookingFixture(t)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), 2, created.ID)

	assert.ErrorIs(t, err, ErrNotBookingLearner)
}

func TestTerminalBookingCannotBeReactioned(t *testing.T) {
	l, svc := newBookingFixture(t)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	_, err = svc.RejectBooking(context.Background(), 2, created.ID, "")
	require.NoError(t, err)

	_, err = svc.AcceptBooking(context.Background(), 2, created.ID, "", "", nil)
	var conflict *domain.StatusConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Booking is already rejected", conflict.Error())

	_, err = svc.CancelBooking(context.Background(), 1, created.ID)
	require.ErrorAs(t, err, &conflict)

	// The refund happened exactly once.
	assert.Equal(t, 1, l.users[1].Credits)
	assert.Equal(t, 0, l.users[1].PendingCredits)
}

// Total credits in the system stay constant through a full lifecycle.
func TestCreditConservationAcrossLifecycle(t *testing.T) {
	l, svc := newBookingFixture(t)

	total := func() int {
		sum := 0
		for _, u := range l.users {
			sum += u.Credits + u.PendingCredits
		}
		return sum
	}
	initial := total()

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)
	assert.Equal(t, initial, total())

	_, err = svc.AcceptBooking(context.Background(), 2, created.ID, "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, initial, total())

	_, err = svc.CompleteBooking(context.Background(), 2, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, initial, total())
}

func TestGetBookingRequiresParticipant(t *testing.T) {
	l, svc := newBookingFixture(t)
	l.addUser(3, 1)

	created, err := svc.CreateBooking(context.Background(), domain.Booking{
		LearnerID: 1, TeacherID: 2, SkillID: 10, Duration: domain.Duration1Hour,
	})
	require.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), 3, created.ID)

	assert.ErrorIs(t, err, ErrNotBookingParticipant)
}
