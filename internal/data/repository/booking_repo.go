package repository

import (
	"context"
	"fmt"
	"time"

	"fleet-rental/internal/data/entity"
	"fleet-rental/internal/rental"
	"fleet-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCompanyID(ctx context.Context, companyID uuid.UUID, state rental.BookingState, limit, offset int) ([]*entity.Booking, error)
	CountByCompanyID(ctx context.Context, companyID uuid.UUID, state rental.BookingState) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateState(ctx context.Context, id uuid.UUID, state rental.BookingState) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Dashboard queries
	CountByState(ctx context.Context, companyID uuid.UUID) (map[rental.BookingState]int64, error)
	CountStartingBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time, states []rental.BookingState) (int64, error)
	CountEndingBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time, states []rental.BookingState) (int64, error)
	FindRecent(ctx context.Context, companyID uuid.UUID, limit int) ([]*entity.Booking, error)

	// Reconciliation queries
	FindLateStarts(ctx context.Context, companyID uuid.UUID, now time.Time) ([]*entity.Booking, error)
	FindLateReturns(ctx context.Context, companyID uuid.UUID, now time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, company_id, project_ref, source_warehouse_id, date_start, date_end, state, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.CompanyID,
		&booking.ProjectRef,
		&booking.SourceWarehouseID,
		&booking.DateStart,
		&booking.DateEnd,
		&booking.State,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, reference, company_id, project_ref, source_warehouse_id, date_start, date_end, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.CompanyID,
		booking.ProjectRef,
		booking.SourceWarehouseID,
		booking.DateStart,
		booking.DateEnd,
		booking.State,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCompanyID(ctx context.Context, companyID uuid.UUID, state rental.BookingState, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE company_id = $1 AND ($2 = '' OR state = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, companyID, string(state), limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by company ID",
			zap.Error(err),
			zap.String("company_id", companyID.String()),
			zap.String("state", string(state)),
		)
		return nil, fmt.Errorf("find bookings by company ID %s: %w", companyID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) CountByCompanyID(ctx context.Context, companyID uuid.UUID, state rental.BookingState) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE company_id = $1 AND ($2 = '' OR state = $2)`

	var count int64
	err := r.db.QueryRow(ctx, query, companyID, string(state)).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings",
			zap.Error(err),
			zap.String("company_id", companyID.String()),
		)
		return 0, fmt.Errorf("count bookings by company ID %s: %w", companyID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET project_ref = $2, source_warehouse_id = $3, date_start = $4,
		    date_end = $5, state = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ProjectRef,
		booking.SourceWarehouseID,
		booking.DateStart,
		booking.DateEnd,
		booking.State,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateState(ctx context.Context, id uuid.UUID, state rental.BookingState) error {
	query := `UPDATE bookings SET state = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, state)
	if err != nil {
		r.log.Error("Failed to update booking state",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("state", string(state)),
		)
		return fmt.Errorf("update booking %s state to %s: %w", id.String(), string(state), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Lines go with the booking (ON DELETE CASCADE).
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) CountByState(ctx context.Context, companyID uuid.UUID) (map[rental.BookingState]int64, error) {
	query := `SELECT state, COUNT(*) FROM bookings WHERE company_id = $1 GROUP BY state`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		r.log.Error("Failed to count bookings by state",
			zap.Error(err),
			zap.String("company_id", companyID.String()),
		)
		return nil, fmt.Errorf("count bookings by state: %w", err)
	}
	defer rows.Close()

	counts := make(map[rental.BookingState]int64)
	for rows.Next() {
		var state rental.BookingState
		var count int64
		if err := rows.Scan(&state, &count); err != nil {
			return nil, fmt.Errorf("scan state count row: %w", err)
		}
		counts[state] = count
	}

	return counts, rows.Err()
}

func (r *bookingRepository) CountStartingBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time, states []rental.BookingState) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE company_id = $1 AND state = ANY($2)
		  AND date_start >= $3 AND date_start < $4
	`

	var count int64
	err := r.db.QueryRow(ctx, query, companyID, stateStrings(states), from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings starting between: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) CountEndingBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time, states []rental.BookingState) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE company_id = $1 AND state = ANY($2)
		  AND date_end >= $3 AND date_end < $4
	`

	var count int64
	err := r.db.QueryRow(ctx, query, companyID, stateStrings(states), from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings ending between: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindRecent(ctx context.Context, companyID uuid.UUID, limit int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, companyID, limit)
	if err != nil {
		r.log.Error("Failed to find recent bookings", zap.Error(err))
		return nil, fmt.Errorf("find recent bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindLateStarts(ctx context.Context, companyID uuid.UUID, now time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE company_id = $1 AND state = ANY($2) AND date_start < $3
		ORDER BY date_start
	`

	states := []string{string(rental.StatePlanned), string(rental.StateReserved)}
	rows, err := r.db.Query(ctx, query, companyID, states, now)
	if err != nil {
		r.log.Error("Failed to find late starts", zap.Error(err))
		return nil, fmt.Errorf("find late starts: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindLateReturns(ctx context.Context, companyID uuid.UUID, now time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE company_id = $1 AND state = ANY($2) AND date_end < $3
		ORDER BY date_end
	`

	states := []string{string(rental.StateReserved), string(rental.StateOngoing)}
	rows, err := r.db.Query(ctx, query, companyID, states, now)
	if err != nil {
		r.log.Error("Failed to find late returns", zap.Error(err))
		return nil, fmt.Errorf("find late returns: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func stateStrings(states []rental.BookingState) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}
