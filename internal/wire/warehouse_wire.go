package wire

import (
	"fleet-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWarehouse(r chi.Router, warehouseHandler *adaptor.WarehouseHandler) {
	r.Route("/warehouses", func(r chi.Router) {
		// GET /api/warehouses - warehouses with their locations
		r.Get("/", warehouseHandler.ListWarehouses)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", warehouseHandler.GetWarehouse)

			// PUT /api/warehouses/{id}/rental-location
			r.Put("/rental-location", warehouseHandler.SetRentalLocation)
		})
	})
}
