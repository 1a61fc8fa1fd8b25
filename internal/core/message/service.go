// Package message
package message

import (
	"context"

	"loftly/internal/domain"
	"loftly/internal/event"
)

type Service struct {
	repo    domain.MessageRepository
	rentals domain.RentalRepository
	users   domain.UserRepository
	bus     *event.Bus
}

func NewService(repo domain.MessageRepository, rentals domain.RentalRepository, users domain.UserRepository, bus *event.Bus) *Service {
	return &Service{
		repo:    repo,
		rentals: rentals,
		users:   users,
		bus:     bus,
	}
}

func (s *Service) List(ctx context.Context) ([]*domain.Message, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, messageID int64) (*domain.Message, error) {
	return s.repo.GetByID(ctx, messageID)
}

// Create persists a message after checking that the referenced rental
// and user exist, then announces it on the event bus.
func (s *Service) Create(ctx context.Context, req domain.MessageSaveRequest) (*domain.Message, error) {
	if _, err := s.rentals.GetByID(ctx, req.RentalID); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		RentalID: req.RentalID,
		UserID:   req.UserID,
		Message:  req.Message,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(domain.EventMessageCreated, &domain.MessageCreatedEvent{Message: msg})
	}

	return msg, nil
}

// Delete removes a message. Only its sender may delete it.
func (s *Service) Delete(ctx context.Context, messageID int64) error {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	msg, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if msg.UserID != user.ID {
		return domain.ErrForbidden
	}

	return s.repo.Delete(ctx, messageID)
}
