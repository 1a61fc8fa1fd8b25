package domain

import (
	"context"
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")

type Message struct {
	ID        int64     `json:"id"`
	RentalID  int64     `json:"rental_id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MessageSaveRequest struct {
	RentalID int64  `json:"rental_id" validate:"required,numeric"`
	UserID   int64  `json:"user_id" validate:"required,numeric"`
	Message  string `json:"message" validate:"required,max=2000"`
}

type MessageRepository interface {
	List(ctx context.Context) ([]*Message, error)
	GetByID(ctx context.Context, messageID int64) (*Message, error)
	Create(ctx context.Context, message *Message) error
	Delete(ctx context.Context, messageID int64) error
}

type MessageService interface {
	List(ctx context.Context) ([]*Message, error)
	GetByID(ctx context.Context, messageID int64) (*Message, error)
	Create(ctx context.Context, req MessageSaveRequest) (*Message, error)
	Delete(ctx context.Context, messageID int64) error
}
