// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/hsh/internal/ctxlog"
)

// Watch cancels the context on the second signal of a given type.
// It returns when that happens, when ctx is done, or when sigCh is closed.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Info(ctx, "watchdog", "detail", "received second signal of type, terminating", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Info(ctx, "watchdog", "detail", "received first signal of type, no-op", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}

// OnInterrupt calls fn for every signal received on sigCh until ctx is done
// or sigCh is closed.
func OnInterrupt(ctx context.Context, sigCh chan os.Signal, fn func(os.Signal)) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			ctxlog.Debug(ctx, "interrupt", "signal", sig.String())
			fn(sig)
		}
	}
}
