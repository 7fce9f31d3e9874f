package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SubmitFeedbackRequest struct {
	ClassID  uint   `json:"class_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	Comments string `json:"comments" binding:"required"`
}

func (req *SubmitFeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ClassID, validation.Required),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comments, validation.Required, validation.Length(1, 1000)),
	)
}
