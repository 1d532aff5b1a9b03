package rental

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a booking or product does not exist.
var ErrNotFound = errors.New("not found")

// InvalidTransitionError is returned when an action is not legal from the
// booking's current state. The state graph is fixed; nothing moves.
type InvalidTransitionError struct {
	From   BookingState
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("action %q is not allowed from state %q", e.Action, e.From)
}

// ValidationError collects per-field problems found before a transition.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// InsufficientAvailabilityError reports the exact shortfall so callers can
// show capacity, what is already committed and what was asked for.
type InsufficientAvailabilityError struct {
	ProductID uuid.UUID
	Capacity  decimal.Decimal
	Committed decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientAvailabilityError) Error() string {
	available := e.Capacity.Sub(e.Committed)
	if available.IsNegative() {
		available = decimal.Zero
	}
	return fmt.Sprintf(
		"not enough availability for product %s: available %s, committed %s, requested %s",
		e.ProductID, available.String(), e.Committed.String(), e.Requested.String(),
	)
}

// NoCapacityConfiguredError is returned when a product's fleet capacity
// resolves to zero. Distinct from InsufficientAvailabilityError: there is
// nothing bookable at all.
type NoCapacityConfiguredError struct {
	ProductID uuid.UUID
}

func (e *NoCapacityConfiguredError) Error() string {
	return fmt.Sprintf("product %s has no fleet capacity configured", e.ProductID)
}
