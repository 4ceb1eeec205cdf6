// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker relays termination signals to running recipes.
//
// Notify subscribes to OS signals. A Broker watches those signals, hands the
// first one of each kind to its subscribers and cancels the run on a repeat.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/brec/internal/ctxlog"
)

// DefaultSignals returns the signals Notify relays when none are given.
func DefaultSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT}
}

// Notify relays sigs, or DefaultSignals, to the returned channel until stop is called.
// The channel is writable so callers can inject signals of their own.
func Notify(ctx context.Context, sigs ...os.Signal) (ch chan os.Signal, stop func()) {
	if len(sigs) == 0 {
		sigs = DefaultSignals()
	}

	ch = make(chan os.Signal, len(sigs))
	signal.Notify(ch, sigs...)

	ctxlog.Debug(ctx, "relaying signals", "signals", sigs)

	return ch, func() { signal.Stop(ch) }
}
