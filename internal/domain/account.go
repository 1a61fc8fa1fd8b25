package domain

import (
	"context"
	"errors"
)

var ErrInvalidCurrentPassword = errors.New("invalid current password")

// AccountProfileRequest carries the mutable identity fields. Changing
// the email orphans outstanding tokens, their subject no longer
// resolves, so the caller has to sign in again afterwards.
type AccountProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type AccountPasswordRequest struct {
	CurrentPassword      string `json:"current_password" validate:"required,min=8"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,min=8,eqfield=Password"`
}

type AccountService interface {
	UpdateProfile(ctx context.Context, req AccountProfileRequest) error
	ChangePassword(ctx context.Context, req AccountPasswordRequest) error
}
