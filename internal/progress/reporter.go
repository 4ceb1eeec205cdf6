// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"
	"sync/atomic"
)

// ChannelReporter implements Reporter using a buffered Go channel.
// Report never blocks: when the buffer is full the event is dropped and counted.
type ChannelReporter struct {
	ch     chan Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	mu     sync.RWMutex // guards closed and sends on ch
	closed bool

	dropped atomic.Int64
}

// NewChannelReporter creates a new ChannelReporter with the specified buffer size.
// A larger buffer size reduces the chance of dropping events.
func NewChannelReporter(ctx context.Context, bufferSize int) *ChannelReporter {
	reporterCtx, cancel := context.WithCancel(ctx)

	return &ChannelReporter{
		ch:     make(chan Event, bufferSize),
		ctx:    reporterCtx,
		cancel: cancel,
	}
}

// Report implements Reporter.Report.
// Events reported after Close, or after the parent context is done, are discarded.
func (cr *ChannelReporter) Report(event Event) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.closed || cr.ctx.Err() != nil {
		return
	}

	select {
	case cr.ch <- event:
	default:
		cr.dropped.Add(1)
	}
}

// Close implements Reporter.Close.
// It closes the channel and waits for any listener to drain the buffered events.
func (cr *ChannelReporter) Close() {
	cr.once.Do(func() {
		cr.mu.Lock()
		cr.closed = true
		close(cr.ch)
		cr.mu.Unlock()

		cr.wg.Wait()
		cr.cancel()
	})
}

// Listen forwards events to the listener on a new goroutine until the reporter
// is closed or the parent context is cancelled.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for {
			select {
			case event, ok := <-cr.ch:
				if !ok {
					return
				}

				listener.OnEvent(event)
			case <-cr.ctx.Done():
				return
			}
		}
	}()
}

// Dropped returns the number of events discarded because the buffer was full.
func (cr *ChannelReporter) Dropped() int64 {
	return cr.dropped.Load()
}
