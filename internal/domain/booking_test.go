package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to accepted", BookingPending, BookingAccepted, true},
		{"pending to rejected", BookingPending, BookingRejected, true},
		{"pending to cancelled", BookingPending, BookingCancelled, true},
		{"pending to completed", BookingPending, BookingCompleted, false},
		{"accepted to completed", BookingAccepted, BookingCompleted, true},
		{"accepted to cancelled", BookingAccepted, BookingCancelled, true},
		{"accepted to rejected", BookingAccepted, BookingRejected, false},
		{"accepted to pending", BookingAccepted, BookingPending, false},
		{"rejected is terminal", BookingRejected, BookingCancelled, false},
		{"completed is terminal", BookingCompleted, BookingCancelled, false},
		{"cancelled is terminal", BookingCancelled, BookingAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	assert.False(t, BookingPending.IsTerminal())
	assert.False(t, BookingAccepted.IsTerminal())
	assert.True(t, BookingRejected.IsTerminal())
	assert.True(t, BookingCompleted.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
}

func TestStatusConflictErrorMessage(t *testing.T) {
	err := &StatusConflictError{Current: BookingAccepted}

	assert.Equal(t, "Booking is already accepted", err.Error())
}

func TestBookingIsParticipant(t *testing.T) {
	booking := Booking{LearnerID: 1, TeacherID: 2}

	assert.True(t, booking.IsParticipant(1))
	assert.True(t, booking.IsParticipant(2))
	assert.False(t, booking.IsParticipant(3))
}

func TestSessionDurationIsValid(t *testing.T) {
	assert.True(t, Duration30Min.IsValid())
	assert.True(t, Duration1Hour.IsValid())
	assert.False(t, SessionDuration("45min").IsValid())
}
