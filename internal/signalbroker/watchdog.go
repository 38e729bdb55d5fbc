// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/20142995/command-runner/internal/ctxlog"
)

// Watch monitors the signal channel until ctx is done.
// The first signal calls stop, which should wind the running job down.
// A second signal of any type cancels the context and Watch returns.
func Watch(ctx context.Context, sigCh <-chan os.Signal, stop func(), cancel context.CancelFunc) {
	received := false

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if received {
				ctxlog.Logger(ctx).Info("watchdog", "detail", "received second signal, forcefully terminating", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Logger(ctx).Info("watchdog", "detail", "received first signal, stopping job", "signal", sig.String())

			received = true

			if stop != nil {
				stop()
			}
		}
	}
}
