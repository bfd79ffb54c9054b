package fsm

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phase string

const (
	idle    phase = "idle"
	running phase = "running"
	done    phase = "done"
)

func newMachine() *Machine[phase, string] {
	m := NewMachine[phase, string](idle, nil)
	m.AddTransition(idle, "start", running)
	m.AddTransition(running, "finish", done)
	return m
}

func TestTrigger(t *testing.T) {
	m := newMachine()
	assert.Equal(t, idle, m.Current())
	assert.True(t, m.Can("start"))
	assert.False(t, m.Can("finish"))

	require.NoError(t, m.Trigger(context.Background(), "start"))
	require.NoError(t, m.Trigger(context.Background(), "finish"))
	assert.Equal(t, done, m.Current())
}

func TestInvalidTransition(t *testing.T) {
	m := newMachine()
	err := m.Trigger(context.Background(), "finish")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, idle, m.Current())
}

func TestHandlerCancelsTransition(t *testing.T) {
	m := newMachine()
	boom := errors.New("boom")
	var seen []phase
	m.AddHandler(idle, running, func(ctx context.Context, from, to phase) error {
		seen = append(seen, from, to)
		return boom
	})

	err := m.Trigger(context.Background(), "start")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHandlerFailed))
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, []phase{idle, running}, seen)
	assert.Equal(t, idle, m.Current())
}
