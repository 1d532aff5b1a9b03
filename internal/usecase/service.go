package usecase

import (
	"fleet-rental/internal/data/repository"
	"fleet-rental/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Capacity     CapacityService
	Booking      BookingService
	Availability AvailabilityService
	Dashboard    DashboardService
	Reconcile    ReconcileService
	Product      ProductService
	Warehouse    WarehouseService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	capacity := NewCapacityService(repo.Stock, log)
	pickings := NewRepositoryPickingCreator(repo.Picking, log)

	return &Service{
		Capacity:     capacity,
		Booking:      NewBookingService(repo, capacity, pickings, config.Rental.SequenceCode, log),
		Availability: NewAvailabilityService(repo, capacity, log),
		Dashboard:    NewDashboardService(repo, log),
		Reconcile:    NewReconcileService(repo, log),
		Product:      NewProductService(repo, capacity, log),
		Warehouse:    NewWarehouseService(repo, log),
	}
}
