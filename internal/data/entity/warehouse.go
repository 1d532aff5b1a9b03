package entity

import "github.com/google/uuid"

type Warehouse struct {
	Base
	CompanyID uuid.UUID `db:"company_id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	// RentalLocationID is where units sit while rented out. It is an internal
	// location so rented units keep counting toward fleet capacity.
	RentalLocationID *uuid.UUID `db:"rental_location_id"`
}

type LocationUsage string

const (
	LocationUsageInternal LocationUsage = "internal"
	LocationUsageCustomer LocationUsage = "customer"
	LocationUsageSupplier LocationUsage = "supplier"
	LocationUsageView     LocationUsage = "view"
)

// Location is a storage spot inside a warehouse. Only internal locations
// count toward fleet capacity.
type Location struct {
	Base
	WarehouseID uuid.UUID     `db:"warehouse_id"`
	CompanyID   uuid.UUID     `db:"company_id"`
	Name        string        `db:"name"`
	Usage       LocationUsage `db:"usage"`
}
