package response

import (
	"fleet-rental/internal/data/entity"
)

type ProductResponse struct {
	ID      string `json:"id"`
	SKU     string `json:"sku"`
	Name    string `json:"name"`
	Tracked bool   `json:"tracked"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:      product.ID.String(),
		SKU:     product.SKU,
		Name:    product.Name,
		Tracked: product.Tracked,
	}
}
