package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"loftly/internal/domain"
)

type MessageRepository struct {
	db DB
}

func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, rental_id, user_id, message, created_at, updated_at`

func (r *MessageRepository) List(ctx context.Context) ([]*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.RentalID,
			&msg.UserID,
			&msg.Message,
			&msg.CreatedAt,
			&msg.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, messageID int64) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	var msg domain.Message
	if err := r.db.QueryRow(ctx, query, messageID).Scan(
		&msg.ID,
		&msg.RentalID,
		&msg.UserID,
		&msg.Message,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}

	return &msg, nil
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (rental_id, user_id, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	now := time.Now().UTC()

	err := r.db.QueryRow(ctx, query,
		message.RentalID,
		message.UserID,
		message.Message,
		now,
		now,
	).Scan(&message.ID)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	message.CreatedAt = now
	message.UpdatedAt = now
	return nil
}

func (r *MessageRepository) Delete(ctx context.Context, messageID int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrMessageNotFound
	}

	return nil
}
