package adaptor

import (
	"fleet-rental/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking      *BookingHandler
	Availability *AvailabilityHandler
	Dashboard    *DashboardHandler
	Product      *ProductHandler
	Warehouse    *WarehouseHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:      NewBookingHandler(service.Booking, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Dashboard:    NewDashboardHandler(service.Dashboard, log),
		Product:      NewProductHandler(service.Product, log),
		Warehouse:    NewWarehouseHandler(service.Warehouse, log),
	}
}
