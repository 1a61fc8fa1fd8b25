package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"loftly/internal/domain"
)

type RentalRepository struct {
	db DB
}

func NewRentalRepository(db DB) *RentalRepository {
	return &RentalRepository{db: db}
}

const rentalQuery = `
	SELECT
		r.id,
		r.name,
		r.surface,
		r.price,
		r.picture,
		r.description,
		r.owner_id,
		r.created_at,
		r.updated_at,
		u.id,
		u.name,
		u.email
	FROM rentals r
	JOIN users u ON r.owner_id = u.id
`

func (r *RentalRepository) List(ctx context.Context) ([]*domain.Rental, error) {
	rows, err := r.db.Query(ctx, rentalQuery+" ORDER BY r.created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query rentals: %w", err)
	}
	defer rows.Close()

	var rentals []*domain.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rental: %w", err)
		}
		rentals = append(rentals, rental)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rentals, nil
}

func (r *RentalRepository) GetByID(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	row := r.db.QueryRow(ctx, rentalQuery+" WHERE r.id = $1", rentalID)

	rental, err := scanRental(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRentalNotFound
		}
		return nil, err
	}

	return rental, nil
}

func scanRental(row pgx.Row) (*domain.Rental, error) {
	var rental domain.Rental
	var owner domain.User

	if err := row.Scan(
		&rental.ID,
		&rental.Name,
		&rental.Surface,
		&rental.Price,
		&rental.Picture,
		&rental.Description,
		&rental.OwnerID,
		&rental.CreatedAt,
		&rental.UpdatedAt,
		&owner.ID,
		&owner.Name,
		&owner.Email,
	); err != nil {
		return nil, err
	}

	rental.Owner = &owner
	return &rental, nil
}

func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	query := `
		INSERT INTO rentals (name, surface, price, picture, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	now := time.Now().UTC()

	err := r.db.QueryRow(ctx, query,
		rental.Name,
		rental.Surface,
		rental.Price,
		rental.Picture,
		rental.Description,
		rental.OwnerID,
		now,
		now,
	).Scan(&rental.ID)
	if err != nil {
		return fmt.Errorf("failed to insert rental: %w", err)
	}

	rental.CreatedAt = now
	rental.UpdatedAt = now
	return nil
}

func (r *RentalRepository) Update(ctx context.Context, rental *domain.Rental, rentalID int64) error {
	query := `
		UPDATE rentals
		SET name = $1, surface = $2, price = $3, picture = $4, description = $5, updated_at = $6
		WHERE id = $7
	`

	ct, err := r.db.Exec(ctx, query,
		rental.Name,
		rental.Surface,
		rental.Price,
		rental.Picture,
		rental.Description,
		time.Now().UTC(),
		rentalID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rental: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrRentalNotFound
	}

	return nil
}
