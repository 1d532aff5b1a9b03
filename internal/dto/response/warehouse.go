package response

import (
	"fleet-rental/internal/data/entity"
)

type LocationResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Usage string `json:"usage"`
}

type WarehouseResponse struct {
	ID               string             `json:"id"`
	Code             string             `json:"code"`
	Name             string             `json:"name"`
	RentalLocationID string             `json:"rental_location_id,omitempty"`
	Locations        []LocationResponse `json:"locations,omitempty"`
}

func WarehouseToResponse(warehouse *entity.Warehouse, locations []*entity.Location) WarehouseResponse {
	resp := WarehouseResponse{
		ID:   warehouse.ID.String(),
		Code: warehouse.Code,
		Name: warehouse.Name,
	}
	if warehouse.RentalLocationID != nil {
		resp.RentalLocationID = warehouse.RentalLocationID.String()
	}
	for _, location := range locations {
		resp.Locations = append(resp.Locations, LocationResponse{
			ID:    location.ID.String(),
			Name:  location.Name,
			Usage: string(location.Usage),
		})
	}
	return resp
}
