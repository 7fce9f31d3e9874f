package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (req *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required, validation.In("learner", "teacher", "admin")),
	)
}

type AddCreditsRequest struct {
	Amount int `json:"amount" binding:"required"`
}

func (req *AddCreditsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.Min(1), validation.Max(1000)),
	)
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

func (req *ResetPasswordRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.NewPassword, validation.Required),
	); err != nil {
		return err
	}

	return validatePassword(req.NewPassword)
}
