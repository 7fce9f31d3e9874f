package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

var skillLevels = []interface{}{"beginner", "intermediate", "advanced"}

type CreateSkillRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Level       string `json:"level" binding:"required"`
}

func (req *CreateSkillRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(10, 1000)),
		validation.Field(&req.Category, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Level, validation.Required, validation.In(skillLevels...)),
	)
}

type UpdateSkillRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Level       string `json:"level" binding:"required"`
}

func (req *UpdateSkillRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(10, 1000)),
		validation.Field(&req.Category, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Level, validation.Required, validation.In(skillLevels...)),
	)
}
