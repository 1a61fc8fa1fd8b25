// Package rental
package rental

import (
	"context"

	"loftly/internal/domain"
)

type Service struct {
	repo  domain.RentalRepository
	files domain.FileStore
}

func NewService(repo domain.RentalRepository, files domain.FileStore) *Service {
	return &Service{
		repo:  repo,
		files: files,
	}
}

func (s *Service) List(ctx context.Context) ([]*domain.Rental, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	return s.repo.GetByID(ctx, rentalID)
}

// Create stores the picture first, then persists the rental owned by
// the authenticated user.
func (s *Service) Create(ctx context.Context, req domain.RentalSaveRequest, picture *domain.Upload) (*domain.Rental, error) {
	owner, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if picture == nil {
		return nil, domain.ErrPictureRequired
	}

	pictureURL, err := s.files.Store(picture)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		Name:        req.Name,
		Surface:     req.Surface,
		Price:       req.Price,
		Picture:     pictureURL,
		Description: req.Description,
		OwnerID:     owner.ID,
		Owner:       owner,
	}

	if err := s.repo.Create(ctx, rental); err != nil {
		return nil, err
	}

	return rental, nil
}

// Update replaces the rental's fields. Only the owner may update; the
// picture is kept when no new upload is supplied.
func (s *Service) Update(ctx context.Context, req domain.RentalSaveRequest, picture *domain.Upload, rentalID int64) error {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	rental, err := s.repo.GetByID(ctx, rentalID)
	if err != nil {
		return err
	}

	if err := assertOwner(rental, user); err != nil {
		return err
	}

	rental.Name = req.Name
	rental.Surface = req.Surface
	rental.Price = req.Price
	rental.Description = req.Description

	if picture != nil {
		pictureURL, err := s.files.Store(picture)
		if err != nil {
			return err
		}
		rental.Picture = pictureURL
	}

	return s.repo.Update(ctx, rental, rentalID)
}

// assertOwner compares the rental's recorded owner against the caller.
func assertOwner(rental *domain.Rental, user *domain.User) error {
	if rental.Owner == nil || rental.Owner.Email != user.Email {
		return domain.ErrForbidden
	}
	return nil
}
