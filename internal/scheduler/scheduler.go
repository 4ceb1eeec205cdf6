// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matt-FFFFFF/brec/internal/ctxlog"
	"github.com/matt-FFFFFF/brec/internal/dag"
	"github.com/matt-FFFFFF/brec/internal/progress"
	"golang.org/x/sync/errgroup"
)

// Scheduler runs graphs. A Scheduler holds no per-run state and may be reused.
type Scheduler struct {
	reporter progress.Reporter
}

// Option configures a Scheduler.
type Option func(s *Scheduler)

// WithReporter sends lifecycle events for every node to r.
// The scheduler does not close the reporter.
func WithReporter(r progress.Reporter) Option {
	return func(s *Scheduler) {
		if r != nil {
			s.reporter = r
		}
	}
}

// New creates a Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		reporter: progress.NewNullReporter(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// handle is the single execution record of one node.
// err is written before done is closed and must only be read after.
type handle struct {
	done chan struct{}
	err  error
}

type run struct {
	graph    *dag.Graph
	reporter progress.Reporter

	mu      sync.Mutex
	handles map[string]*handle
	results map[string]*Result
	wg      sync.WaitGroup

	failOnce sync.Once
	firstErr error
}

// Run executes every node of g.
// The graph is checked for closure and cycles first; if either check fails no
// task runs and the error is returned with nil Results.
// Otherwise Run returns when every node has settled. The error is the first
// task failure, a *PayloadError, or nil.
func (s *Scheduler) Run(ctx context.Context, g *dag.Graph) (Results, error) {
	if err := g.CheckClosed(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := g.Validate(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	r := &run{
		graph:    g,
		reporter: s.reporter,
		handles:  make(map[string]*handle, g.Len()),
		results:  make(map[string]*Result, g.Len()),
	}

	names := g.Names()
	for _, name := range names {
		r.results[name] = &Result{Name: name, Status: StatusPending}
	}

	ctxlog.Debug(ctx, "scheduler starting", "nodes", len(names))

	for _, name := range names {
		r.request(ctx, name)
	}

	r.wg.Wait()

	res := make(Results, 0, len(names))
	for _, name := range names {
		res = append(res, r.results[name])
	}

	ctxlog.Debug(ctx, "scheduler finished", "failed", res.HasError())

	return res, r.firstErr
}

// request returns the handle for name, creating it and launching its body if
// this is the first request. Lookup and creation happen under one lock so a
// name can never get two handles.
func (r *run) request(ctx context.Context, name string) *handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[name]; ok {
		return h
	}

	h := &handle{done: make(chan struct{})}
	r.handles[name] = h
	r.wg.Add(1)

	go r.execute(ctx, name, h)

	return h
}

func (r *run) execute(ctx context.Context, name string, h *handle) {
	defer r.wg.Done()
	defer close(h.done)

	node, _ := r.graph.Node(name)
	res := r.results[name]
	logger := ctxlog.Logger(ctx).With("recipe", name)

	res.Status = StatusWaiting
	r.report(name, progress.EventWaiting, "waiting for dependencies", progress.EventData{})

	if err := r.awaitDeps(ctx, node); err != nil {
		var depErr *DependencyError
		if errors.As(err, &depErr) {
			depErr.Node = name
		}

		logger.Debug("dependency failed, not running", "error", err)
		r.settle(res, h, err)
		r.report(name, progress.EventSkipped, err.Error(), progress.EventData{Error: err})

		return
	}

	if err := ctx.Err(); err != nil {
		logger.Debug("context done before start", "error", err)
		r.fail(res, h, &PayloadError{Node: name, Err: err})

		return
	}

	res.Status = StatusRunning
	res.Ran = true
	res.Start = time.Now()

	logger.Debug("running")
	r.report(name, progress.EventStarted, "running", progress.EventData{})

	err := invoke(ctx, node.Task)
	res.Duration = time.Since(res.Start)

	if err != nil {
		logger.Debug("failed", "error", err, "duration", res.Duration)
		r.fail(res, h, &PayloadError{Node: name, Err: err})

		return
	}

	logger.Debug("completed", "duration", res.Duration)
	r.settle(res, h, nil)
	r.report(name, progress.EventCompleted, "completed", progress.EventData{Duration: res.Duration})
}

// awaitDeps waits on every dependency concurrently and returns a
// *DependencyError for a failed one.
func (r *run) awaitDeps(ctx context.Context, node *dag.Node) error {
	var eg errgroup.Group

	for _, dep := range node.Deps {
		dh := r.request(ctx, dep)

		eg.Go(func() error {
			<-dh.done

			if dh.err != nil {
				return &DependencyError{Dependency: dep, Err: dh.err}
			}

			return nil
		})
	}

	return eg.Wait() //nolint:wrapcheck
}

func (r *run) settle(res *Result, h *handle, err error) {
	res.Err = err
	h.err = err

	if err != nil {
		res.Status = StatusFailed
		return
	}

	res.Status = StatusCompleted
}

// fail settles a node whose own task failed and records the first such failure.
func (r *run) fail(res *Result, h *handle, err *PayloadError) {
	r.settle(res, h, err)
	r.failOnce.Do(func() {
		r.firstErr = err
	})
	r.report(res.Name, progress.EventFailed, err.Error(), progress.EventData{
		Duration: res.Duration,
		Error:    err,
	})
}

func (r *run) report(name string, t progress.EventType, msg string, data progress.EventData) {
	r.reporter.Report(progress.Event{
		Node:      name,
		Type:      t,
		Message:   msg,
		Timestamp: time.Now(),
		Data:      data,
	})
}

// invoke runs task, converting a panic into a *PanicError.
func invoke(ctx context.Context, task dag.Task) (err error) {
	if task == nil {
		return nil
	}

	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v}
		}
	}()

	return task(ctx)
}
