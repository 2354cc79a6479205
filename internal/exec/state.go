package exec

import "fmt"

// State is the lifecycle of one queued action.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// IsTerminal reports whether the state is final.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Transition validates a single state change. The caller supplies the
// expected prior state so races become observable.
func Transition(states []State, idx int, from, to State) error {
	if idx < 0 || idx >= len(states) {
		return fmt.Errorf("unknown action index %d", idx)
	}
	if states[idx] != from {
		return fmt.Errorf("invalid transition for action %d: expected %s, got %s", idx, from, states[idx])
	}
	if !allowed(from, to) {
		return fmt.Errorf("disallowed transition for action %d: %s -> %s", idx, from, to)
	}
	states[idx] = to
	return nil
}

func allowed(from, to State) bool {
	switch from {
	case StatePending:
		return to == StateRunning || to == StateFailed
	case StateRunning:
		return to == StateSucceeded || to == StateFailed
	default:
		return false
	}
}
