package entity

import "github.com/google/uuid"

type PickingDirection string

const (
	PickingDirectionOut PickingDirection = "out"
	PickingDirectionIn  PickingDirection = "in"
)

type PickingState string

const (
	PickingStatePending PickingState = "pending"
	PickingStateDone    PickingState = "done"
)

// Picking is a physical movement record created when a booking is reserved
// (out) or returned (in). Creation is best-effort; booking state never rolls
// back on picking failure.
type Picking struct {
	Base
	BookingID uuid.UUID        `db:"booking_id"`
	Direction PickingDirection `db:"direction"`
	State     PickingState     `db:"state"`
}
