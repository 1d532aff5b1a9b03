package response

import (
	"time"

	"github.com/shopspring/decimal"

	"fleet-rental/internal/data/entity"
	"fleet-rental/internal/rental"
)

type BookingLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type BookingResponse struct {
	ID                string                `json:"id"`
	Reference         string                `json:"reference"`
	ProjectRef        string                `json:"project_ref,omitempty"`
	SourceWarehouseID string                `json:"source_warehouse_id,omitempty"`
	DateStart         *time.Time            `json:"date_start,omitempty"`
	DateEnd           *time.Time            `json:"date_end,omitempty"`
	State             rental.BookingState   `json:"state"`
	Lines             []BookingLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking, lines []*entity.BookingLine) BookingResponse {
	resp := BookingResponse{
		ID:         booking.ID.String(),
		Reference:  booking.Reference,
		ProjectRef: booking.ProjectRef,
		DateStart:  booking.DateStart,
		DateEnd:    booking.DateEnd,
		State:      booking.State,
		CreatedAt:  booking.CreatedAt,
	}
	if booking.SourceWarehouseID != nil {
		resp.SourceWarehouseID = booking.SourceWarehouseID.String()
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, BookingLineResponse{
			ID:        line.ID.String(),
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
		})
	}
	return resp
}
