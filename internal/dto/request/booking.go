package request

import "github.com/shopspring/decimal"

// BookingLineRequest is one product/quantity pair on a booking.
type BookingLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type CreateBookingRequest struct {
	ProjectRef        string               `json:"project_ref"`
	SourceWarehouseID string               `json:"source_warehouse_id" validate:"omitempty,uuid4"`
	DateStart         string               `json:"date_start" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DateEnd           string               `json:"date_end" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Lines             []BookingLineRequest `json:"lines" validate:"omitempty,dive"`
}

type UpdateBookingRequest struct {
	ProjectRef        string `json:"project_ref"`
	SourceWarehouseID string `json:"source_warehouse_id" validate:"omitempty,uuid4"`
	DateStart         string `json:"date_start" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DateEnd           string `json:"date_end" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type ReplaceLinesRequest struct {
	Lines []BookingLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type AddLineRequest struct {
	BookingLineRequest
}
