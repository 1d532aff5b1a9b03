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

type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error)
	FindByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*entity.Warehouse, error)
	SetRentalLocation(ctx context.Context, warehouseID, locationID uuid.UUID) error
}

type warehouseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWarehouseRepository(db database.PgxIface, log *zap.Logger) WarehouseRepository {
	return &warehouseRepository{
		db:  db,
		log: log.With(zap.String("repository", "warehouse")),
	}
}

func (r *warehouseRepository) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, company_id, code, name, rental_location_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		warehouse.ID,
		warehouse.CompanyID,
		warehouse.Code,
		warehouse.Name,
		warehouse.RentalLocationID,
		warehouse.CreatedAt,
		warehouse.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create warehouse",
			zap.Error(err),
			zap.String("code", warehouse.Code),
		)
		return fmt.Errorf("create warehouse %s: %w", warehouse.Code, err)
	}

	return nil
}

func (r *warehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	query := `
		SELECT id, company_id, code, name, rental_location_id, created_at, updated_at
		FROM warehouses
		WHERE id = $1
	`

	var warehouse entity.Warehouse
	err := r.db.QueryRow(ctx, query, id).Scan(
		&warehouse.ID,
		&warehouse.CompanyID,
		&warehouse.Code,
		&warehouse.Name,
		&warehouse.RentalLocationID,
		&warehouse.CreatedAt,
		&warehouse.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find warehouse by ID",
			zap.Error(err),
			zap.String("warehouse_id", id.String()),
		)
		return nil, fmt.Errorf("find warehouse by ID %s: %w", id.String(), err)
	}

	return &warehouse, nil
}

func (r *warehouseRepository) FindByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, company_id, code, name, rental_location_id, created_at, updated_at
		FROM warehouses
		WHERE company_id = $1
		ORDER BY code
	`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		r.log.Error("Failed to find warehouses by company ID", zap.Error(err))
		return nil, fmt.Errorf("find warehouses by company ID %s: %w", companyID.String(), err)
	}
	defer rows.Close()

	var warehouses []*entity.Warehouse
	for rows.Next() {
		var warehouse entity.Warehouse
		err := rows.Scan(
			&warehouse.ID,
			&warehouse.CompanyID,
			&warehouse.Code,
			&warehouse.Name,
			&warehouse.RentalLocationID,
			&warehouse.CreatedAt,
			&warehouse.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse row: %w", err)
		}
		warehouses = append(warehouses, &warehouse)
	}

	return warehouses, rows.Err()
}

func (r *warehouseRepository) SetRentalLocation(ctx context.Context, warehouseID, locationID uuid.UUID) error {
	query := `UPDATE warehouses SET rental_location_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, warehouseID, locationID)
	if err != nil {
		r.log.Error("Failed to set rental location",
			zap.Error(err),
			zap.String("warehouse_id", warehouseID.String()),
		)
		return fmt.Errorf("set rental location for warehouse %s: %w", warehouseID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("warehouse %s not found", warehouseID.String())
	}

	return nil
}
