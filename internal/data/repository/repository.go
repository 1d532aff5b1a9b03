package repository

import (
	"fleet-rental/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Product     ProductRepository
	Warehouse   WarehouseRepository
	Location    LocationRepository
	Stock       StockRepository
	Booking     BookingRepository
	BookingLine BookingLineRepository
	Picking     PickingRepository
	Sequence    SequenceRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Product:     NewProductRepository(db, log),
		Warehouse:   NewWarehouseRepository(db, log),
		Location:    NewLocationRepository(db, log),
		Stock:       NewStockRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BookingLine: NewBookingLineRepository(db, log),
		Picking:     NewPickingRepository(db, log),
		Sequence:    NewSequenceRepository(db, log),
	}
}
