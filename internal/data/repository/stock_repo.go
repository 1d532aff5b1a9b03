package repository

import (
	"context"
	"fmt"

	"fleet-rental/internal/data/entity"
	"fleet-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockRepository is the physical stock source behind the capacity resolver.
type StockRepository interface {
	Create(ctx context.Context, level *entity.StockLevel) error

	// InternalOnHand sums recorded on-hand quantity over all of the
	// product's internal locations within the company. Zero when the product
	// has no stock rows.
	InternalOnHand(ctx context.Context, productID, companyID uuid.UUID) (decimal.Decimal, error)

	// InternalOnHandMany does the same for a batch of products in one query.
	// Products without stock rows are absent from the result map.
	InternalOnHandMany(ctx context.Context, productIDs []uuid.UUID, companyID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}

type stockRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStockRepository(db database.PgxIface, log *zap.Logger) StockRepository {
	return &stockRepository{
		db:  db,
		log: log.With(zap.String("repository", "stock")),
	}
}

func (r *stockRepository) Create(ctx context.Context, level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (id, product_id, location_id, company_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		level.ID,
		level.ProductID,
		level.LocationID,
		level.CompanyID,
		level.Quantity,
		level.CreatedAt,
		level.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create stock level",
			zap.Error(err),
			zap.String("product_id", level.ProductID.String()),
			zap.String("location_id", level.LocationID.String()),
		)
		return fmt.Errorf("create stock level for product %s: %w", level.ProductID.String(), err)
	}

	return nil
}

func (r *stockRepository) InternalOnHand(ctx context.Context, productID, companyID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.quantity), 0)
		FROM stock_levels s
		JOIN locations loc ON loc.id = s.location_id
		WHERE s.product_id = $1
		  AND s.company_id = $2
		  AND loc.usage = 'internal'
	`

	var total decimal.Decimal
	err := r.db.QueryRow(ctx, query, productID, companyID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to sum internal on-hand",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return decimal.Zero, fmt.Errorf("sum internal on-hand for product %s: %w", productID.String(), err)
	}

	return total, nil
}

func (r *stockRepository) InternalOnHandMany(ctx context.Context, productIDs []uuid.UUID, companyID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	query := `
		SELECT s.product_id, COALESCE(SUM(s.quantity), 0)
		FROM stock_levels s
		JOIN locations loc ON loc.id = s.location_id
		WHERE s.product_id = ANY($1)
		  AND s.company_id = $2
		  AND loc.usage = 'internal'
		GROUP BY s.product_id
	`

	rows, err := r.db.Query(ctx, query, productIDs, companyID)
	if err != nil {
		r.log.Error("Failed to sum internal on-hand batch", zap.Error(err))
		return nil, fmt.Errorf("sum internal on-hand batch: %w", err)
	}
	defer rows.Close()

	totals := make(map[uuid.UUID]decimal.Decimal, len(productIDs))
	for rows.Next() {
		var productID uuid.UUID
		var total decimal.Decimal
		if err := rows.Scan(&productID, &total); err != nil {
			return nil, fmt.Errorf("scan on-hand row: %w", err)
		}
		totals[productID] = total
	}

	return totals, rows.Err()
}
