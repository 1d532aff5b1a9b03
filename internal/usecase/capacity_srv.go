package usecase

import (
	"context"
	"fmt"

	"fleet-rental/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CapacityService resolves a product's total fleet capacity: the physical
// on-hand total over all internal locations, independent of bookings. It is
// the ceiling every availability check compares against.
type CapacityService interface {
	Resolve(ctx context.Context, productID, companyID uuid.UUID) (decimal.Decimal, error)
	ResolveMany(ctx context.Context, productIDs []uuid.UUID, companyID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}

type capacityService struct {
	stock repository.StockRepository
	log   *zap.Logger
}

func NewCapacityService(stock repository.StockRepository, log *zap.Logger) CapacityService {
	return &capacityService{
		stock: stock,
		log:   log.With(zap.String("service", "capacity")),
	}
}

// Resolve recomputes on every call; there is no caching layer. A product
// with no internal stock records resolves to 0.
func (s *capacityService) Resolve(ctx context.Context, productID, companyID uuid.UUID) (decimal.Decimal, error) {
	total, err := s.stock.InternalOnHand(ctx, productID, companyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("resolve capacity for product %s: %w", productID.String(), err)
	}
	return total, nil
}

func (s *capacityService) ResolveMany(ctx context.Context, productIDs []uuid.UUID, companyID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	totals, err := s.stock.InternalOnHandMany(ctx, productIDs, companyID)
	if err != nil {
		return nil, fmt.Errorf("resolve capacities: %w", err)
	}

	// Products without stock rows still get an explicit zero.
	for _, id := range productIDs {
		if _, ok := totals[id]; !ok {
			totals[id] = decimal.Zero
		}
	}

	return totals, nil
}
