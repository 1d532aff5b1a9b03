package repository

import (
	"context"
	"fmt"

	"fleet-rental/internal/data/entity"
	"fleet-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)
	FindByWarehouseID(ctx context.Context, warehouseID uuid.UUID) ([]*entity.Location, error)
}

type locationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLocationRepository(db database.PgxIface, log *zap.Logger) LocationRepository {
	return &locationRepository{
		db:  db,
		log: log.With(zap.String("repository", "location")),
	}
}

func (r *locationRepository) Create(ctx context.Context, location *entity.Location) error {
	query := `
		INSERT INTO locations (id, warehouse_id, company_id, name, usage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		location.ID,
		location.WarehouseID,
		location.CompanyID,
		location.Name,
		location.Usage,
		location.CreatedAt,
		location.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create location",
			zap.Error(err),
			zap.String("name", location.Name),
		)
		return fmt.Errorf("create location %s: %w", location.Name, err)
	}

	return nil
}

func (r *locationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	query := `
		SELECT id, warehouse_id, company_id, name, usage, created_at, updated_at
		FROM locations
		WHERE id = $1
	`

	var location entity.Location
	err := r.db.QueryRow(ctx, query, id).Scan(
		&location.ID,
		&location.WarehouseID,
		&location.CompanyID,
		&location.Name,
		&location.Usage,
		&location.CreatedAt,
		&location.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find location by ID",
			zap.Error(err),
			zap.String("location_id", id.String()),
		)
		return nil, fmt.Errorf("find location by ID %s: %w", id.String(), err)
	}

	return &location, nil
}

func (r *locationRepository) FindByWarehouseID(ctx context.Context, warehouseID uuid.UUID) ([]*entity.Location, error) {
	query := `
		SELECT id, warehouse_id, company_id, name, usage, created_at, updated_at
		FROM locations
		WHERE warehouse_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, warehouseID)
	if err != nil {
		r.log.Error("Failed to find locations by warehouse ID", zap.Error(err))
		return nil, fmt.Errorf("find locations by warehouse ID %s: %w", warehouseID.String(), err)
	}
	defer rows.Close()

	var locations []*entity.Location
	for rows.Next() {
		var location entity.Location
		err := rows.Scan(
			&location.ID,
			&location.WarehouseID,
			&location.CompanyID,
			&location.Name,
			&location.Usage,
			&location.CreatedAt,
			&location.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan location row: %w", err)
		}
		locations = append(locations, &location)
	}

	return locations, rows.Err()
}
