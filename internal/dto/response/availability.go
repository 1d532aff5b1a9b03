package response

import "github.com/shopspring/decimal"

// GridCell is one (product, week) figure of the availability grid.
type GridCell struct {
	Booked    decimal.Decimal  `json:"booked"`
	Available decimal.Decimal  `json:"available"`
	Missing   *decimal.Decimal `json:"missing,omitempty"`
	Fits      *bool            `json:"fits,omitempty"`
}

type GridRow struct {
	ProductID     string           `json:"product_id"`
	ProductName   string           `json:"product_name,omitempty"`
	FleetCapacity decimal.Decimal  `json:"fleet_capacity"`
	Needed        *decimal.Decimal `json:"needed,omitempty"`
	Cells         []GridCell       `json:"cells"`
}

type GridColumn struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type GridMeta struct {
	Mode        string `json:"mode"`
	BookingID   string `json:"booking_id,omitempty"`
	DateStart   string `json:"date_start"`
	WeekCount   int    `json:"week_count"`
	WarehouseID string `json:"warehouse_id,omitempty"`
}

type GridResponse struct {
	Meta    GridMeta     `json:"meta"`
	Columns []GridColumn `json:"columns"`
	Rows    []GridRow    `json:"rows"`
}

type CapacityResponse struct {
	ProductID     string          `json:"product_id"`
	FleetCapacity decimal.Decimal `json:"fleet_capacity"`
}
