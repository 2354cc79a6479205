package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	states := []State{StatePending, StatePending}

	require.NoError(t, Transition(states, 0, StatePending, StateRunning))
	require.NoError(t, Transition(states, 0, StateRunning, StateSucceeded))
	assert.Equal(t, StateSucceeded, states[0])

	require.NoError(t, Transition(states, 1, StatePending, StateFailed))
	assert.Equal(t, StateFailed, states[1])
}

func TestTransitionRejectsWrongPriorState(t *testing.T) {
	states := []State{StatePending}
	err := Transition(states, 0, StateRunning, StateSucceeded)
	require.Error(t, err)
	assert.Equal(t, StatePending, states[0], "failed transition must not mutate")
}

func TestTransitionRejectsDisallowedEdges(t *testing.T) {
	tests := []struct {
		name     string
		from, to State
	}{
		{"pending cannot finish directly", StatePending, StateSucceeded},
		{"running cannot go back", StateRunning, StatePending},
		{"succeeded is terminal", StateSucceeded, StateRunning},
		{"failed is terminal", StateFailed, StateRunning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			states := []State{tt.from}
			assert.Error(t, Transition(states, 0, tt.from, tt.to))
			assert.Equal(t, tt.from, states[0])
		})
	}
}

func TestTransitionRejectsUnknownIndex(t *testing.T) {
	states := []State{StatePending}
	assert.Error(t, Transition(states, -1, StatePending, StateRunning))
	assert.Error(t, Transition(states, 1, StatePending, StateRunning))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatePending.IsTerminal())
	assert.False(t, StateRunning.IsTerminal())
	assert.True(t, StateSucceeded.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
}
