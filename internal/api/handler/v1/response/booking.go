package response

import "github.com/skillswap/skillswap-api/internal/domain"

type BookingResponse struct {
	Message string         `json:"message"`
	Booking domain.Booking `json:"booking"`

	// Credits carries the learner's balance after a hold or refund.
	Credits *domain.CreditSnapshot `json:"credits,omitempty"`
}

type BookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
}
