package usecase

import (
	"context"
	"fmt"

	"fleet-rental/internal/data/entity"
	"fleet-rental/internal/data/repository"
	"fleet-rental/internal/dto/request"
	"fleet-rental/internal/dto/response"
	"fleet-rental/internal/rental"
	"fleet-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WarehouseService interface {
	List(ctx context.Context, companyID uuid.UUID) ([]response.WarehouseResponse, error)
	Get(ctx context.Context, warehouseID string) (*response.WarehouseResponse, error)
	SetRentalLocation(ctx context.Context, warehouseID string, req *request.SetRentalLocationRequest) (*response.WarehouseResponse, error)
}

type warehouseService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWarehouseService(repo *repository.Repository, log *zap.Logger) WarehouseService {
	return &warehouseService{
		repo: repo,
		log:  log.With(zap.String("service", "warehouse")),
	}
}

func (s *warehouseService) List(ctx context.Context, companyID uuid.UUID) ([]response.WarehouseResponse, error) {
	warehouses, err := s.repo.Warehouse.FindByCompanyID(ctx, companyID)
	if err != nil {
		s.log.Error("Failed to list warehouses", zap.Error(err))
		return nil, fmt.Errorf("list warehouses: %w", err)
	}

	items := make([]response.WarehouseResponse, 0, len(warehouses))
	for _, warehouse := range warehouses {
		locations, err := s.repo.Location.FindByWarehouseID(ctx, warehouse.ID)
		if err != nil {
			return nil, fmt.Errorf("load warehouse locations: %w", err)
		}
		items = append(items, response.WarehouseToResponse(warehouse, locations))
	}

	return items, nil
}

func (s *warehouseService) Get(ctx context.Context, warehouseID string) (*response.WarehouseResponse, error) {
	warehouse, locations, err := s.load(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	resp := response.WarehouseToResponse(warehouse, locations)
	return &resp, nil
}

// SetRentalLocation pins the warehouse's rented-out location. It must be one
// of the warehouse's own internal locations; otherwise rented units would
// drop out of the capacity sum the moment they leave.
func (s *warehouseService) SetRentalLocation(ctx context.Context, warehouseID string, req *request.SetRentalLocationRequest) (*response.WarehouseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &rental.ValidationError{Fields: errs}
	}

	warehouse, _, err := s.load(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location ID format %s: %w", req.LocationID, err)
	}

	location, err := s.repo.Location.FindByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("find location: %w", err)
	}
	if location == nil {
		return nil, rental.ErrNotFound
	}

	if location.WarehouseID != warehouse.ID {
		return nil, &rental.ValidationError{Fields: map[string]string{
			"location_id": "Location belongs to another warehouse",
		}}
	}
	if location.Usage != entity.LocationUsageInternal {
		return nil, &rental.ValidationError{Fields: map[string]string{
			"location_id": "Rental location must be an internal location",
		}}
	}

	if err := s.repo.Warehouse.SetRentalLocation(ctx, warehouse.ID, location.ID); err != nil {
		return nil, fmt.Errorf("set rental location: %w", err)
	}

	s.log.Info("Rental location set",
		zap.String("warehouse_id", warehouse.ID.String()),
		zap.String("location_id", location.ID.String()),
	)

	return s.Get(ctx, warehouseID)
}

func (s *warehouseService) load(ctx context.Context, warehouseID string) (*entity.Warehouse, []*entity.Location, error) {
	id, err := uuid.Parse(warehouseID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid warehouse ID format %s: %w", warehouseID, err)
	}

	warehouse, err := s.repo.Warehouse.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find warehouse: %w", err)
	}
	if warehouse == nil {
		return nil, nil, rental.ErrNotFound
	}

	locations, err := s.repo.Location.FindByWarehouseID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load warehouse locations: %w", err)
	}

	return warehouse, locations, nil
}
