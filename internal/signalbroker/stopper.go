// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"sync"
)

// Stopper holds the function called on the first signal.
// It is set once a job is running. The zero value does nothing.
type Stopper struct {
	mu sync.Mutex
	fn func()
}

type stopperKey struct{}

// Set replaces the stop function.
func (s *Stopper) Set(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fn = fn
}

// Stop calls the current stop function, if any.
func (s *Stopper) Stop() {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// WithStopper returns a context carrying s.
func WithStopper(ctx context.Context, s *Stopper) context.Context {
	return context.WithValue(ctx, stopperKey{}, s)
}

// StopperFrom returns the Stopper in ctx, or a new one that nothing watches.
func StopperFrom(ctx context.Context) *Stopper {
	if s, ok := ctx.Value(stopperKey{}).(*Stopper); ok && s != nil {
		return s
	}

	return &Stopper{}
}
