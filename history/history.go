// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package history implements a bounded linear undo/redo history.
//
// The manager stores opaque states and never inspects them. Callers decide
// what one action is and push the state captured before it. Pushing a new
// state discards the redo branch; history is linear, not a tree.
//
// Manager is not safe for concurrent use.
package history

import "log/slog"

// DefaultCapacity is the number of states each stack keeps by default.
const DefaultCapacity = 50

// Option configures a Manager.
type Option func(*options)

type options struct {
	capacity int
	logger   *slog.Logger
}

// WithCapacity sets the per-stack capacity. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.capacity = n
		}
	}
}

// WithLogger sets the logger used for eviction messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Manager holds two bounded stacks of states.
type Manager[S any] struct {
	undo      []S
	redo      []S
	capacity  int
	truncated bool
	log       *slog.Logger
}

// New creates an empty Manager.
func New[S any](opts ...Option) *Manager[S] {
	o := options{
		capacity: DefaultCapacity,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[S]{
		capacity: o.capacity,
		log:      o.logger,
	}
}

// Push records s as the state to return to on the next Undo.
// The oldest state is evicted when the undo stack is full, and the redo
// stack is cleared.
func (m *Manager[S]) Push(s S) {
	m.undo = m.pushBounded(m.undo, s)
	clear(m.redo)
	m.redo = m.redo[:0]
}

// Undo pops the most recent state and records current for Redo.
// It reports false and changes nothing when there is nothing to undo.
func (m *Manager[S]) Undo(current S) (S, bool) {
	prev, ok := pop(&m.undo)
	if !ok {
		return prev, false
	}
	m.redo = m.pushBounded(m.redo, current)
	return prev, true
}

// Redo is the inverse of Undo.
func (m *Manager[S]) Redo(current S) (S, bool) {
	next, ok := pop(&m.redo)
	if !ok {
		return next, false
	}
	m.undo = m.pushBounded(m.undo, current)
	return next, true
}

// Clear empties both stacks and resets Truncated.
func (m *Manager[S]) Clear() {
	clear(m.undo)
	clear(m.redo)
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
	m.truncated = false
}

// CanUndo reports whether Undo would succeed.
func (m *Manager[S]) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (m *Manager[S]) CanRedo() bool { return len(m.redo) > 0 }

// UndoLen returns the number of undoable states.
func (m *Manager[S]) UndoLen() int { return len(m.undo) }

// RedoLen returns the number of redoable states.
func (m *Manager[S]) RedoLen() int { return len(m.redo) }

// Capacity returns the per-stack bound.
func (m *Manager[S]) Capacity() int { return m.capacity }

// Truncated reports whether a state has been evicted since the last Clear,
// meaning the oldest reachable undo state is not the original one.
func (m *Manager[S]) Truncated() bool { return m.truncated }

func (m *Manager[S]) pushBounded(stack []S, s S) []S {
	if len(stack) >= m.capacity {
		n := len(stack) - m.capacity + 1
		copy(stack, stack[n:])
		clear(stack[len(stack)-n:])
		stack = stack[:len(stack)-n]
		m.truncated = true
		m.log.Debug("history: evicted oldest state", "capacity", m.capacity)
	}
	return append(stack, s)
}

func pop[S any](stack *[]S) (S, bool) {
	var zero S
	n := len(*stack)
	if n == 0 {
		return zero, false
	}
	s := (*stack)[n-1]
	(*stack)[n-1] = zero
	*stack = (*stack)[:n-1]
	return s, true
}
