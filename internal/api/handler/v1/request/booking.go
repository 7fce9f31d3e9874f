package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var sessionDurations = []interface{}{"30min", "1hour", "2hours", "3hours"}

type CreateBookingRequest struct {
	TeacherID     uint   `json:"teacher_id" binding:"required"`
	SkillID       uint   `json:"skill_id" binding:"required"`
	ClassID       *uint  `json:"class_id,omitempty"`
	Message       string `json:"message,omitempty"`
	PreferredDate string `json:"preferred_date,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"`
	Duration      string `json:"duration" binding:"required"`
}

func (req *CreateBookingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeacherID, validation.Required),
		validation.Field(&req.SkillID, validation.Required),
		validation.Field(&req.Message, validation.Length(0, 500)),
		validation.Field(&req.PreferredDate, validation.Date(time.RFC3339)),
		validation.Field(&req.Duration, validation.Required, validation.In(sessionDurations...)),
	)
}

// ParsedPreferredDate returns the preferred date or nil when none was sent.
// Validate has already checked the format.
func (req *CreateBookingRequest) ParsedPreferredDate() *time.Time {
	if req.PreferredDate == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, req.PreferredDate)
	if err != nil {
		return nil
	}

	return &parsed
}

type AcceptBookingRequest struct {
	TeacherResponse string `json:"teacher_response,omitempty"`
	MeetingLink     string `json:"meeting_link,omitempty"`
	ClassID         *uint  `json:"class_id,omitempty"`
}

func (req *AcceptBookingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeacherResponse, validation.Length(0, 500)),
	)
}

type RejectBookingRequest struct {
	TeacherResponse string `json:"teacher_response,omitempty"`
}

func (req *RejectBookingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeacherResponse, validation.Length(0, 500)),
	)
}

type CompleteBookingRequest struct {
	MeetingNotes string `json:"meeting_notes,omitempty"`
}

func (req *CompleteBookingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MeetingNotes, validation.Length(0, 1000)),
	)
}
