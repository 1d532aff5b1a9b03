package entity

import (
	"time"

	"github.com/google/uuid"

	"fleet-rental/internal/rental"
)

// Booking is a rental order against a time window. Dates stay nil while the
// booking is a draft; confirm requires both.
type Booking struct {
	Base
	Reference         string              `db:"reference"`
	CompanyID         uuid.UUID           `db:"company_id"`
	ProjectRef        string              `db:"project_ref"`
	SourceWarehouseID *uuid.UUID          `db:"source_warehouse_id"`
	DateStart         *time.Time          `db:"date_start"`
	DateEnd           *time.Time          `db:"date_end"`
	State             rental.BookingState `db:"state"`
}
