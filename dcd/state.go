package dcd

import (
	"log/slog"

	"github.com/CSMONE/mlpack/internal/fsm"
)

// State is the progress of a training run.
type State int

const (
	// Running is the state between initialization and termination.
	Running State = iota
	// Converged means the optimality gap fell to the accuracy threshold.
	Converged
	// EpochLimitReached means the epoch budget ran out first.
	EpochLimitReached
	// Stopped means Stop or a cancelled context ended the run between epochs.
	Stopped
)

var stateNames = [...]string{"RUNNING", "CONVERGED", "EPOCH_LIMIT_REACHED", "STOPPED"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// Terminal reports whether training is over in this state.
func (s State) Terminal() bool {
	return s != Running
}

type event int

const (
	eventGapReached event = iota
	eventEpochBudgetSpent
	eventStopRequested
)

func (e event) String() string {
	switch e {
	case eventGapReached:
		return "gap_reached"
	case eventEpochBudgetSpent:
		return "epoch_budget_spent"
	case eventStopRequested:
		return "stop_requested"
	}
	return "unknown"
}

// newStateMachine wires RUNNING to its three terminal states. Terminal states
// have no outgoing rules.
func newStateMachine(logger *slog.Logger) *fsm.Machine[State, event] {
	m := fsm.NewMachine[State, event](Running, logger)
	m.AddTransition(Running, eventGapReached, Converged)
	m.AddTransition(Running, eventEpochBudgetSpent, EpochLimitReached)
	m.AddTransition(Running, eventStopRequested, Stopped)
	return m
}
