package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLevel is the recorded on-hand quantity of a product at one location.
type StockLevel struct {
	Base
	ProductID  uuid.UUID       `db:"product_id"`
	LocationID uuid.UUID       `db:"location_id"`
	CompanyID  uuid.UUID       `db:"company_id"`
	Quantity   decimal.Decimal `db:"quantity"`
}
