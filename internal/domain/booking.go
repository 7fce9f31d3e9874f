package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// bookingTransitions encodes the only legal edges of the booking state
// machine. Rejected, completed and cancelled are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingAccepted, BookingRejected, BookingCancelled},
	BookingAccepted: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// StatusConflictError reports an operation applied to a booking whose
// current status does not permit it.
type StatusConflictError struct {
	Current BookingStatus
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("Booking is already %s", e.Current)
}

type SessionDuration string

const (
	Duration30Min  SessionDuration = "30min"
	Duration1Hour  SessionDuration = "1hour"
	Duration2Hours SessionDuration = "2hours"
	Duration3Hours SessionDuration = "3hours"
)

func (d SessionDuration) IsValid() bool {
	switch d {
	case Duration30Min, Duration1Hour, Duration2Hours, Duration3Hours:
		return true
	}
	return false
}

type Booking struct {
	ID              uint            `json:"id"`
	LearnerID       uint            `json:"learner_id"`
	Learner         *User           `json:"learner,omitempty"`
	TeacherID       uint            `json:"teacher_id"`
	Teacher         *User           `json:"teacher,omitempty"`
	SkillID         uint            `json:"skill_id"`
	Skill           *Skill          `json:"skill,omitempty"`
	ClassID         *uint           `json:"class_id,omitempty"`
	Message         string          `json:"message,omitempty"`
	PreferredDate   *time.Time      `json:"preferred_date,omitempty"`
	PreferredTime   string          `json:"preferred_time,omitempty"`
	Duration        SessionDuration `json:"duration"`
	Status          BookingStatus   `json:"status"`
	CreditCost      int             `json:"credit_cost"`
	TeacherResponse string          `json:"teacher_response,omitempty"`
	MeetingLink     string          `json:"meeting_link,omitempty"`
	MeetingNotes    string          `json:"meeting_notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (b Booking) IsParticipant(userID uint) bool {
	return b.LearnerID == userID || b.TeacherID == userID
}

// RoleBookingStats counts a user's bookings by status on one side of the
// marketplace.
type RoleBookingStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Accepted  int64 `json:"accepted"`
	Completed int64 `json:"completed"`
}

type BookingStats struct {
	AsLearner RoleBookingStats `json:"as_learner"`
	AsTeacher RoleBookingStats `json:"as_teacher"`
}
