package rental

// BookingState is the lifecycle state of a booking. Lines inherit it from
// their owning booking.
type BookingState string

const (
	StateDraft     BookingState = "draft"
	StatePlanned   BookingState = "planned"
	StateReserved  BookingState = "reserved"
	StateOngoing   BookingState = "ongoing"
	StateFinished  BookingState = "finished"
	StateReturned  BookingState = "returned"
	StateCancelled BookingState = "cancelled"
)

// Actions on a booking. Each is valid from exactly the states listed in
// transitions below.
const (
	ActionConfirm     = "confirm"
	ActionReserve     = "reserve"
	ActionMarkOngoing = "mark_ongoing"
	ActionFinish      = "finish"
	ActionReturn      = "return"
	ActionCancel      = "cancel"
)

// transitions is the fixed state graph. cancel is the only action valid from
// more than one state; cancelled and returned are terminal.
var transitions = map[string]map[BookingState]BookingState{
	ActionConfirm:     {StateDraft: StatePlanned},
	ActionReserve:     {StatePlanned: StateReserved},
	ActionMarkOngoing: {StateReserved: StateOngoing},
	ActionFinish:      {StateOngoing: StateFinished},
	ActionReturn:      {StateFinished: StateReturned},
	ActionCancel: {
		StateDraft:    StateCancelled,
		StatePlanned:  StateCancelled,
		StateReserved: StateCancelled,
		StateOngoing:  StateCancelled,
		StateFinished: StateCancelled,
	},
}

// Next returns the state an action leads to from the given state, or an
// InvalidTransitionError if the edge does not exist.
func Next(from BookingState, action string) (BookingState, error) {
	if to, ok := transitions[action][from]; ok {
		return to, nil
	}
	return "", &InvalidTransitionError{From: from, Action: action}
}

// CapacityReducingStates are the states whose line quantities count against
// fleet capacity in the overlap check. planned is a soft hold only; demand is
// released once the goods are back (returned) or the booking is cancelled.
var CapacityReducingStates = []BookingState{StateReserved, StateOngoing, StateFinished}

// IsCapacityReducing reports whether lines in this state claim capacity.
func IsCapacityReducing(s BookingState) bool {
	switch s {
	case StateReserved, StateOngoing, StateFinished:
		return true
	}
	return false
}

// IsTerminal reports whether the state can never be left.
func IsTerminal(s BookingState) bool {
	return s == StateReturned || s == StateCancelled
}

// LinesEditable reports whether booking lines may still be added or changed.
func LinesEditable(s BookingState) bool {
	return s == StateDraft || s == StatePlanned
}
