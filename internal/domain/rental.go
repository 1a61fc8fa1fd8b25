package domain

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrRentalNotFound  = errors.New("rental not found")
	ErrForbidden       = errors.New("forbidden")
	ErrPictureRequired = errors.New("picture is required")
)

type Rental struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Surface     float64   `json:"surface"`
	Price       float64   `json:"price"`
	Picture     string    `json:"picture"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	Owner       *User     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RentalSaveRequest struct {
	Name        string  `json:"name" validate:"required"`
	Surface     float64 `json:"surface" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,max=2000"`
}

// Upload is an incoming picture file, decoupled from multipart specifics.
type Upload struct {
	File     io.Reader
	Filename string
}

// FileStore persists an upload and returns its publicly resolvable URL.
type FileStore interface {
	Store(upload *Upload) (string, error)
}

type RentalRepository interface {
	List(ctx context.Context) ([]*Rental, error)
	GetByID(ctx context.Context, rentalID int64) (*Rental, error)
	Create(ctx context.Context, rental *Rental) error
	Update(ctx context.Context, rental *Rental, rentalID int64) error
}

type RentalService interface {
	List(ctx context.Context) ([]*Rental, error)
	GetByID(ctx context.Context, rentalID int64) (*Rental, error)
	Create(ctx context.Context, req RentalSaveRequest, picture *Upload) (*Rental, error)
	Update(ctx context.Context, req RentalSaveRequest, picture *Upload, rentalID int64) error
}
