// Package account
package account

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"loftly/internal/domain"
)

type Service struct {
	repo domain.UserRepository
}

func NewService(repo domain.UserRepository) *Service {
	return &Service{repo: repo}
}

// UpdateProfile renames the account and can move it to a new email.
// Uniqueness of both fields is settled by the store's constraints,
// surfacing as the duplicate errors.
func (s *Service) UpdateProfile(ctx context.Context, req domain.AccountProfileRequest) error {
	userCtx, ok := domain.UserFromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	user, err := s.repo.GetByID(ctx, userCtx.ID)
	if err != nil {
		return err
	}

	user.Name = req.Name
	user.Email = req.Email

	return s.repo.Update(ctx, user, user.ID)
}

// ChangePassword replaces the stored hash after verifying the current
// password. Existing tokens stay valid until they expire.
func (s *Service) ChangePassword(ctx context.Context, req domain.AccountPasswordRequest) error {
	userCtx, ok := domain.UserFromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	user, err := s.repo.GetByID(ctx, userCtx.ID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrInvalidCurrentPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)

	return s.repo.Update(ctx, user, user.ID)
}
