package wire

import (
	"fleet-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProduct(r chi.Router, productHandler *adaptor.ProductHandler) {
	// GET /api/products - list rentable products
	r.Get("/products", productHandler.ListProducts)

	// GET /api/products/{id}/capacity - resolved fleet capacity
	r.Get("/products/{id}/capacity", productHandler.GetCapacity)
}
