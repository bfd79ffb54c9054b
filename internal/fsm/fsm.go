// Package fsm provides a small generic finite state machine.
package fsm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidTransition is returned when no rule exists for an event in the current state.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrHandlerFailed wraps the error of a transition handler.
	ErrHandlerFailed = errors.New("fsm handler failed")
)

// Handler runs when the machine moves from one state to another. Returning an
// error cancels the transition.
type Handler[S comparable] func(ctx context.Context, from, to S) error

// Machine holds the current state and the transition rules.
type Machine[S comparable, E comparable] struct {
	transitions map[S]map[E]S
	handlers    map[S]map[S]Handler[S]
	current     S
	logger      *slog.Logger
	mu          sync.RWMutex
}

// NewMachine creates a machine in the initial state. A nil logger uses slog.Default().
func NewMachine[S comparable, E comparable](initial S, logger *slog.Logger) *Machine[S, E] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine[S, E]{
		current:     initial,
		transitions: make(map[S]map[E]S),
		handlers:    make(map[S]map[S]Handler[S]),
		logger:      logger,
	}
}

// AddTransition registers from --event--> to.
func (m *Machine[S, E]) AddTransition(from S, event E, to S) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[E]S)
	}
	m.transitions[from][event] = to
}

// AddHandler registers a callback for the from -> to transition.
func (m *Machine[S, E]) AddHandler(from, to S, handler Handler[S]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.handlers[from]; !ok {
		m.handlers[from] = make(map[S]Handler[S])
	}
	m.handlers[from][to] = handler
}

// Current returns the state the machine is in.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current
}

// Can reports whether event has a rule in the current state.
func (m *Machine[S, E]) Can(event E) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.transitions[m.current][event]
	return ok
}

// Trigger fires event and moves to the target state.
func (m *Machine[S, E]) Trigger(ctx context.Context, event E) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.current
	to, ok := m.transitions[from][event]
	if !ok {
		return errors.Wrapf(ErrInvalidTransition, "event %v for state %v", event, from)
	}

	if handler, okH := m.handlers[from][to]; okH {
		if err := handler(ctx, from, to); err != nil {
			return errors.Wrapf(errors.Mark(err, ErrHandlerFailed), "%v -> %v", from, to)
		}
	}

	m.current = to

	m.logger.DebugContext(ctx, "fsm state transitioned",
		"from", fmt.Sprint(from),
		"to", fmt.Sprint(to),
		"event", fmt.Sprint(event),
	)

	return nil
}
