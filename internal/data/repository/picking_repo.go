package repository

import (
	"context"
	"fmt"

	"fleet-rental/internal/data/entity"
	"fleet-rental/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PickingRepository interface {
	Create(ctx context.Context, picking *entity.Picking) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Picking, error)
}

type pickingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPickingRepository(db database.PgxIface, log *zap.Logger) PickingRepository {
	return &pickingRepository{
		db:  db,
		log: log.With(zap.String("repository", "picking")),
	}
}

func (r *pickingRepository) Create(ctx context.Context, picking *entity.Picking) error {
	query := `
		INSERT INTO pickings (id, booking_id, direction, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		picking.ID,
		picking.BookingID,
		picking.Direction,
		picking.State,
		picking.CreatedAt,
		picking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create picking",
			zap.Error(err),
			zap.String("booking_id", picking.BookingID.String()),
			zap.String("direction", string(picking.Direction)),
		)
		return fmt.Errorf("create %s picking for booking %s: %w", string(picking.Direction), picking.BookingID.String(), err)
	}

	return nil
}

func (r *pickingRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Picking, error) {
	query := `
		SELECT id, booking_id, direction, state, created_at, updated_at
		FROM pickings
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find pickings by booking ID", zap.Error(err))
		return nil, fmt.Errorf("find pickings for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var pickings []*entity.Picking
	for rows.Next() {
		var picking entity.Picking
		err := rows.Scan(
			&picking.ID,
			&picking.BookingID,
			&picking.Direction,
			&picking.State,
			&picking.CreatedAt,
			&picking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan picking row: %w", err)
		}
		pickings = append(pickings, &picking)
	}

	return pickings, rows.Err()
}
