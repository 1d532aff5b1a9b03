package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fleet-rental/internal/rental"
)

// BookingLine belongs to exactly one booking. Its window and state are
// inherited from the booking; deleting the booking deletes its lines.
type BookingLine struct {
	BaseSimple
	BookingID uuid.UUID       `db:"booking_id"`
	ProductID uuid.UUID       `db:"product_id"`
	Quantity  decimal.Decimal `db:"quantity"`
}

// DemandLine is a booking line joined with its booking's window and state,
// as loaded for overlap accounting.
type DemandLine struct {
	LineID            uuid.UUID
	BookingID         uuid.UUID
	ProductID         uuid.UUID
	Quantity          decimal.Decimal
	DateStart         time.Time
	DateEnd           time.Time
	State             rental.BookingState
	SourceWarehouseID *uuid.UUID
}
