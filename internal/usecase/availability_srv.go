package usecase

import (
	"context"
	"fmt"
	"time"

	"fleet-rental/internal/data/entity"
	"fleet-rental/internal/data/repository"
	"fleet-rental/internal/dto/response"
	"fleet-rental/internal/rental"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GridQuery describes one availability grid request. Needed overlays a
// per-product wanted quantity for "would this booking fit" previews without
// touching any stored state.
type GridQuery struct {
	ProductIDs  []uuid.UUID
	CompanyID   uuid.UUID
	DateStart   time.Time
	WeekCount   int
	WarehouseID *uuid.UUID
	Needed      map[uuid.UUID]decimal.Decimal
}

// AvailabilityService builds the week-bucketed capacity/committed/available
// grid. It is a pure read projection over the same overlap rule the booking
// state machine enforces.
type AvailabilityService interface {
	Grid(ctx context.Context, q GridQuery) (*response.GridResponse, error)
	GridForBooking(ctx context.Context, bookingID string, weekCount int) (*response.GridResponse, error)
}

type availabilityService struct {
	repo     *repository.Repository
	capacity CapacityService
	log      *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, capacity CapacityService, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:     repo,
		capacity: capacity,
		log:      log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) Grid(ctx context.Context, q GridQuery) (*response.GridResponse, error) {
	if q.WeekCount < 1 {
		q.WeekCount = 12
	}

	buckets := rental.WeekBuckets(q.DateStart, q.WeekCount)
	horizonEnd := buckets[len(buckets)-1].End

	// Capacity once per product, reused across all buckets.
	capacities, err := s.capacity.ResolveMany(ctx, q.ProductIDs, q.CompanyID)
	if err != nil {
		return nil, err
	}

	// One demand scan for the whole horizon; bucketing happens in memory.
	demand, err := s.repo.BookingLine.FindDemand(ctx, repository.DemandQuery{
		ProductIDs:  q.ProductIDs,
		CompanyID:   q.CompanyID,
		DateStart:   q.DateStart,
		DateEnd:     horizonEnd,
		States:      rental.CapacityReducingStates,
		WarehouseID: q.WarehouseID,
	})
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID][]*entity.DemandLine)
	for _, line := range demand {
		byProduct[line.ProductID] = append(byProduct[line.ProductID], line)
	}

	products, err := s.repo.Product.FindByIDs(ctx, q.ProductIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	grid := &response.GridResponse{
		Meta: response.GridMeta{
			Mode:      "global",
			DateStart: q.DateStart.Format(time.RFC3339),
			WeekCount: q.WeekCount,
		},
	}
	if q.WarehouseID != nil {
		grid.Meta.WarehouseID = q.WarehouseID.String()
	}

	for _, bucket := range buckets {
		grid.Columns = append(grid.Columns, response.GridColumn{
			Label: bucket.Label(),
			Start: bucket.Start.Format(time.RFC3339),
			End:   bucket.End.Format(time.RFC3339),
		})
	}

	// Row order follows the input product order.
	for _, productID := range q.ProductIDs {
		capacity := capacities[productID]
		row := response.GridRow{
			ProductID:     productID.String(),
			ProductName:   names[productID],
			FleetCapacity: capacity,
		}

		var needed decimal.Decimal
		hasNeeded := false
		if q.Needed != nil {
			if n, ok := q.Needed[productID]; ok {
				needed = n
				hasNeeded = true
				row.Needed = &n
			}
		}

		for _, bucket := range buckets {
			committed := decimal.Zero
			for _, line := range byProduct[productID] {
				if rental.Overlaps(line.DateStart, line.DateEnd, bucket.Start, bucket.End) {
					committed = committed.Add(line.Quantity)
				}
			}

			available := capacity.Sub(committed)
			if available.IsNegative() {
				available = decimal.Zero
			}

			cell := response.GridCell{Booked: committed, Available: available}
			if hasNeeded {
				missing := needed.Sub(available)
				if missing.IsNegative() {
					missing = decimal.Zero
				}
				fits := missing.IsZero()
				cell.Missing = &missing
				cell.Fits = &fits
			}
			row.Cells = append(row.Cells, cell)
		}

		grid.Rows = append(grid.Rows, row)
	}

	s.log.Debug("Availability grid built",
		zap.Int("products", len(q.ProductIDs)),
		zap.Int("weeks", q.WeekCount),
		zap.Int("demand_lines", len(demand)),
	)

	return grid, nil
}

// GridForBooking anchors the grid at the booking's window and overlays its
// own line quantities as needed demand.
func (s *availabilityService) GridForBooking(ctx context.Context, bookingID string, weekCount int) (*response.GridResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, rental.ErrNotFound
	}

	lines, err := s.repo.BookingLine.FindByBookingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking lines: %w", err)
	}

	needed := make(map[uuid.UUID]decimal.Decimal)
	productIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := needed[line.ProductID]; !ok {
			productIDs = append(productIDs, line.ProductID)
		}
		needed[line.ProductID] = needed[line.ProductID].Add(line.Quantity)
	}

	anchor := time.Now()
	if booking.DateStart != nil {
		anchor = *booking.DateStart
	} else if booking.DateEnd != nil {
		anchor = *booking.DateEnd
	}

	grid, err := s.Grid(ctx, GridQuery{
		ProductIDs:  productIDs,
		CompanyID:   booking.CompanyID,
		DateStart:   anchor,
		WeekCount:   weekCount,
		WarehouseID: booking.SourceWarehouseID,
		Needed:      needed,
	})
	if err != nil {
		return nil, err
	}

	grid.Meta.Mode = "booking"
	grid.Meta.BookingID = booking.ID.String()
	return grid, nil
}
