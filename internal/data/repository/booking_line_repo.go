package repository

import (
	"context"
	"fmt"
	"time"

	"fleet-rental/internal/data/entity"
	"fleet-rental/internal/rental"
	"fleet-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingLineRepository interface {
	CreateBatch(ctx context.Context, lines []*entity.BookingLine) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingLine, error)
	DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumOverlapping returns the total quantity of lines on the product whose
	// booking is in one of the given states and whose half-open window
	// overlaps [dateStart, dateEnd). Lines of excludeBookingID are skipped.
	SumOverlapping(ctx context.Context, q OverlapQuery) (decimal.Decimal, error)

	// FindDemand loads every line matching the states whose booking window
	// overlaps [dateStart, dateEnd), joined with the booking's window, for
	// grid bucketing.
	FindDemand(ctx context.Context, q DemandQuery) ([]*entity.DemandLine, error)
}

// OverlapQuery narrows the overlap sum used by the reserve check.
type OverlapQuery struct {
	ProductID        uuid.UUID
	CompanyID        uuid.UUID
	DateStart        time.Time
	DateEnd          time.Time
	States           []rental.BookingState
	ExcludeBookingID uuid.UUID
	WarehouseID      *uuid.UUID
}

// DemandQuery narrows the demand scan used by the availability grid.
type DemandQuery struct {
	ProductIDs  []uuid.UUID
	CompanyID   uuid.UUID
	DateStart   time.Time
	DateEnd     time.Time
	States      []rental.BookingState
	WarehouseID *uuid.UUID
}

type bookingLineRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingLineRepository(db database.PgxIface, log *zap.Logger) BookingLineRepository {
	return &bookingLineRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_line")),
	}
}

func (r *bookingLineRepository) CreateBatch(ctx context.Context, lines []*entity.BookingLine) error {
	query := `
		INSERT INTO booking_lines (id, booking_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, line := range lines {
		_, err := r.db.Exec(ctx, query,
			line.ID,
			line.BookingID,
			line.ProductID,
			line.Quantity,
			line.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create booking line",
				zap.Error(err),
				zap.String("booking_id", line.BookingID.String()),
				zap.String("product_id", line.ProductID.String()),
			)
			return fmt.Errorf("create booking line for booking %s: %w", line.BookingID.String(), err)
		}
	}

	return nil
}

func (r *bookingLineRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingLine, error) {
	query := `
		SELECT id, booking_id, product_id, quantity, created_at
		FROM booking_lines
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking lines",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking lines for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var lines []*entity.BookingLine
	for rows.Next() {
		var line entity.BookingLine
		err := rows.Scan(
			&line.ID,
			&line.BookingID,
			&line.ProductID,
			&line.Quantity,
			&line.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking line row", zap.Error(err))
			return nil, fmt.Errorf("scan booking line row: %w", err)
		}
		lines = append(lines, &line)
	}

	return lines, rows.Err()
}

func (r *bookingLineRepository) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	query := `DELETE FROM booking_lines WHERE booking_id = $1`

	_, err := r.db.Exec(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to delete booking lines",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("delete booking lines for booking %s: %w", bookingID.String(), err)
	}

	return nil
}

func (r *bookingLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM booking_lines WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking line",
			zap.Error(err),
			zap.String("line_id", id.String()),
		)
		return fmt.Errorf("delete booking line %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking line %s not found", id.String())
	}

	return nil
}

func (r *bookingLineRepository) SumOverlapping(ctx context.Context, q OverlapQuery) (decimal.Decimal, error) {
	// Half-open windows: a booking ending exactly when another starts does
	// not overlap.
	query := `
		SELECT COALESCE(SUM(l.quantity), 0)
		FROM booking_lines l
		JOIN bookings b ON b.id = l.booking_id
		WHERE l.product_id = $1
		  AND b.company_id = $2
		  AND b.state = ANY($3)
		  AND b.id <> $4
		  AND b.date_start < $5
		  AND b.date_end > $6
		  AND ($7::uuid IS NULL OR b.source_warehouse_id = $7)
	`

	var total decimal.Decimal
	err := r.db.QueryRow(ctx, query,
		q.ProductID,
		q.CompanyID,
		stateStrings(q.States),
		q.ExcludeBookingID,
		q.DateEnd,
		q.DateStart,
		q.WarehouseID,
	).Scan(&total)

	if err != nil {
		r.log.Error("Failed to sum overlapping demand",
			zap.Error(err),
			zap.String("product_id", q.ProductID.String()),
		)
		return decimal.Zero, fmt.Errorf("sum overlapping demand for product %s: %w", q.ProductID.String(), err)
	}

	return total, nil
}

func (r *bookingLineRepository) FindDemand(ctx context.Context, q DemandQuery) ([]*entity.DemandLine, error) {
	query := `
		SELECT l.id, l.booking_id, l.product_id, l.quantity,
		       b.date_start, b.date_end, b.state, b.source_warehouse_id
		FROM booking_lines l
		JOIN bookings b ON b.id = l.booking_id
		WHERE l.product_id = ANY($1)
		  AND b.company_id = $2
		  AND b.state = ANY($3)
		  AND b.date_start < $4
		  AND b.date_end > $5
		  AND ($6::uuid IS NULL OR b.source_warehouse_id = $6)
	`

	rows, err := r.db.Query(ctx, query,
		q.ProductIDs,
		q.CompanyID,
		stateStrings(q.States),
		q.DateEnd,
		q.DateStart,
		q.WarehouseID,
	)
	if err != nil {
		r.log.Error("Failed to find demand lines", zap.Error(err))
		return nil, fmt.Errorf("find demand lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.DemandLine
	for rows.Next() {
		var line entity.DemandLine
		err := rows.Scan(
			&line.LineID,
			&line.BookingID,
			&line.ProductID,
			&line.Quantity,
			&line.DateStart,
			&line.DateEnd,
			&line.State,
			&line.SourceWarehouseID,
		)
		if err != nil {
			r.log.Error("Failed to scan demand line row", zap.Error(err))
			return nil, fmt.Errorf("scan demand line row: %w", err)
		}
		lines = append(lines, &line)
	}

	return lines, rows.Err()
}
