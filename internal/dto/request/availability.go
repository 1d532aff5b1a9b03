package request

import "github.com/shopspring/decimal"

// GridRequest is the query surface of the availability grid. Needed overlays
// a per-product wanted quantity for "would this fit" previews.
type GridRequest struct {
	ProductIDs  []string                   `json:"product_ids" validate:"required,min=1,dive,uuid4"`
	DateStart   string                     `json:"date_start" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	WeekCount   int                        `json:"week_count" validate:"min=1,max=52"`
	WarehouseID string                     `json:"warehouse_id" validate:"omitempty,uuid4"`
	Needed      map[string]decimal.Decimal `json:"needed,omitempty"`
}
