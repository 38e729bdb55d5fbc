// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startWatch(ctx context.Context, sigCh chan os.Signal, stop func(), cancel context.CancelFunc) *sync.WaitGroup {
	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, stop, cancel)
	}()

	return &wg
}

func TestWatch_FirstSignalStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.Discard)

	var stops atomic.Int32

	sigCh := make(chan os.Signal, 1)
	wg := startWatch(ctx, sigCh, func() { stops.Add(1) }, cancel)

	sigCh <- os.Interrupt

	require.Eventually(t, func() bool { return stops.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.NoError(t, ctx.Err(), "context should not be cancelled after first signal")

	close(sigCh)
	wg.Wait()
}

func TestWatch_SecondSignalCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.Discard)

	var stops atomic.Int32

	sigCh := make(chan os.Signal, 2)
	wg := startWatch(ctx, sigCh, func() { stops.Add(1) }, cancel)

	sigCh <- os.Interrupt
	sigCh <- os.Kill

	wg.Wait()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, int32(1), stops.Load())
}

func TestWatch_ContextDoneReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal)
	wg := startWatch(ctx, sigCh, nil, cancel)

	cancel()
	wg.Wait()
}

func TestNewAndRelease(t *testing.T) {
	ch := New(context.Background())
	require.NotNil(t, ch)
	assert.Equal(t, 1, cap(ch))

	Release(ch)
}

func TestStopper(t *testing.T) {
	var zero Stopper

	assert.NotPanics(t, zero.Stop)

	s := &Stopper{}
	ctx := WithStopper(context.Background(), s)
	require.Same(t, s, StopperFrom(ctx))

	calls := 0
	StopperFrom(ctx).Set(func() { calls++ })
	s.Stop()
	s.Stop()
	assert.Equal(t, 2, calls)

	assert.NotSame(t, s, StopperFrom(context.Background()))
}
