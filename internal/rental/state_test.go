package rental

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var allStates = []BookingState{
	StateDraft, StatePlanned, StateReserved, StateOngoing,
	StateFinished, StateReturned, StateCancelled,
}

var allActions = []string{
	ActionConfirm, ActionReserve, ActionMarkOngoing,
	ActionFinish, ActionReturn, ActionCancel,
}

func TestNextHappyPath(t *testing.T) {
	cases := []struct {
		from   BookingState
		action string
		to     BookingState
	}{
		{StateDraft, ActionConfirm, StatePlanned},
		{StatePlanned, ActionReserve, StateReserved},
		{StateReserved, ActionMarkOngoing, StateOngoing},
		{StateOngoing, ActionFinish, StateFinished},
		{StateFinished, ActionReturn, StateReturned},
	}

	for _, tc := range cases {
		got, err := Next(tc.from, tc.action)
		require.NoError(t, err, "%s from %s", tc.action, tc.from)
		require.Equal(t, tc.to, got)
	}
}

func TestNextCancelFromEveryPreTerminalState(t *testing.T) {
	for _, from := range allStates {
		got, err := Next(from, ActionCancel)
		if IsTerminal(from) {
			require.Error(t, err, "cancel from %s", from)
			continue
		}
		require.NoError(t, err, "cancel from %s", from)
		require.Equal(t, StateCancelled, got)
	}
}

func TestNextRejectsEveryOtherEdge(t *testing.T) {
	allowed := map[BookingState]string{
		StateDraft:    ActionConfirm,
		StatePlanned:  ActionReserve,
		StateReserved: ActionMarkOngoing,
		StateOngoing:  ActionFinish,
		StateFinished: ActionReturn,
	}

	for _, from := range allStates {
		for _, action := range allActions {
			if action == ActionCancel || allowed[from] == action {
				continue
			}

			_, err := Next(from, action)
			require.Error(t, err, "%s from %s should be rejected", action, from)

			var invalid *InvalidTransitionError
			require.ErrorAs(t, err, &invalid)
			require.Equal(t, from, invalid.From)
			require.Equal(t, action, invalid.Action)
		}
	}
}

func TestNextUnknownAction(t *testing.T) {
	_, err := Next(StateDraft, "teleport")
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
}

func TestTerminalStatesAcceptNothing(t *testing.T) {
	for _, from := range []BookingState{StateReturned, StateCancelled} {
		for _, action := range allActions {
			_, err := Next(from, action)
			require.Error(t, err, "%s from terminal %s", action, from)
		}
	}
}

func TestIsCapacityReducing(t *testing.T) {
	want := map[BookingState]bool{
		StateDraft:     false,
		StatePlanned:   false,
		StateReserved:  true,
		StateOngoing:   true,
		StateFinished:  true,
		StateReturned:  false,
		StateCancelled: false,
	}

	for state, expected := range want {
		require.Equal(t, expected, IsCapacityReducing(state), "state %s", state)
	}

	// The exported slice and the predicate must agree.
	for _, state := range CapacityReducingStates {
		require.True(t, IsCapacityReducing(state))
	}
}

func TestIsTerminal(t *testing.T) {
	for _, state := range allStates {
		want := state == StateReturned || state == StateCancelled
		require.Equal(t, want, IsTerminal(state), "state %s", state)
	}
}

func TestLinesEditable(t *testing.T) {
	for _, state := range allStates {
		want := state == StateDraft || state == StatePlanned
		require.Equal(t, want, LinesEditable(state), "state %s", state)
	}
}
