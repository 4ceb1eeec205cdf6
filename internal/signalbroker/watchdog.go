// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"

	"github.com/matt-FFFFFF/brec/internal/ctxlog"
)

// Broker fans signals out to subscribers.
// The zero value is not usable, create one with NewBroker.
type Broker struct {
	mu   sync.Mutex
	subs map[uint64]chan os.Signal
	next uint64
}

// NewBroker creates a Broker with no subscribers.
func NewBroker() *Broker {
	return &Broker{subs: make(map[uint64]chan os.Signal)}
}

// Subscribe returns a channel that receives forwarded signals and a function
// that removes the subscription. Signals are dropped for a subscriber that is not receiving.
func (b *Broker) Subscribe() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish forwards sig to every subscriber without blocking.
func (b *Broker) Publish(sig os.Signal) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- sig:
		default:
		}
	}
}

// Watch reads sigCh until ctx is done or sigCh is closed.
// The first signal of a given type is published to subscribers.
// The second signal of the same type calls cancel and Watch returns.
func (b *Broker) Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, ok := seen[sig]; ok {
				ctxlog.Info(ctx, "watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Info(ctx, "watchdog", "detail", "received first signal of type, forwarding to running recipes", "signal", sig.String())

			seen[sig] = struct{}{}
			b.Publish(sig)
		}
	}
}
