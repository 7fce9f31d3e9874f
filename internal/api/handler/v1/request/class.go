package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var reactionKinds = []interface{}{"like", "heart", "laugh", "wow"}

type CreateClassRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	SkillID     uint   `json:"skill_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	MaxStudents int    `json:"max_students" binding:"required"`
}

func (req *CreateClassRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Length(0, 100)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.SkillID, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date(time.RFC3339)),
		validation.Field(&req.MaxStudents, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

func (req *CreateClassRequest) ParsedDate() time.Time {
	parsed, _ := time.Parse(time.RFC3339, req.Date)

	return parsed
}

type UpdateClassRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date" binding:"required"`
	MaxStudents int    `json:"max_students" binding:"required"`
}

func (req *UpdateClassRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.Date, validation.Required, validation.Date(time.RFC3339)),
		validation.Field(&req.MaxStudents, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

func (req *UpdateClassRequest) ParsedDate() time.Time {
	parsed, _ := time.Parse(time.RFC3339, req.Date)

	return parsed
}

type CreateClassPostRequest struct {
	Message string `json:"message" binding:"required"`
}

func (req *CreateClassPostRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.Length(1, 2000)),
	)
}

type ReactToPostRequest struct {
	Reaction string `json:"reaction" binding:"required"`
}

func (req *ReactToPostRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reaction, validation.Required, validation.In(reactionKinds...)),
	)
}
