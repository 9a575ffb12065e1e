// Package provider holds fetched snapshots of remote state together with the
// dependencies they were fetched for.
//
// Each Refresh takes a new generation token and cancels the fetch it replaces.
// A response is committed only while its token is still the latest, so the
// snapshot always belongs to the most recent dependencies.
package provider

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abrezinsky/judgedesk/internal/metrics"
)

// ErrSuperseded is returned by Refresh when a newer Refresh started first
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// FetchFunc loads the value for deps
type FetchFunc[D comparable, T any] func(ctx context.Context, deps D) (T, error)

// Snapshot is a copy of a provider's state
type Snapshot[D comparable, T any] struct {
	Deps       D
	Value      T
	Loaded     bool
	Loading    bool
	Err        error
	Generation uint64
	UpdatedAt  time.Time
}

// Provider is an explicit {state, dependencies, refresh} holder
type Provider[D comparable, T any] struct {
	name    string
	fetch   FetchFunc[D, T]
	metrics *metrics.Metrics
	now     func() time.Time

	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	snap      Snapshot[D, T]
	observers []func(Snapshot[D, T])
}

// New creates a provider with no dependencies selected
func New[D comparable, T any](name string, fetch FetchFunc[D, T], m *metrics.Metrics) *Provider[D, T] {
	return &Provider[D, T]{name: name, fetch: fetch, metrics: m, now: time.Now}
}

// Name identifies the provider in logs and metrics
func (p *Provider[D, T]) Name() string {
	return p.name
}

// OnUpdate registers fn to run after every commit, patch and reset
func (p *Provider[D, T]) OnUpdate(fn func(Snapshot[D, T])) {
	p.mu.Lock()
	p.observers = append(p.observers, fn)
	p.mu.Unlock()
}

// Snapshot returns the current state
func (p *Provider[D, T]) Snapshot() Snapshot[D, T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Refresh fetches the value for deps. Changing deps clears the previous value
// immediately. A failed fetch leaves the provider unloaded with Err set.
func (p *Provider[D, T]) Refresh(ctx context.Context, deps D) (Snapshot[D, T], error) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.gen++
	gen := p.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	if p.snap.Deps != deps {
		var zero T
		p.snap.Value = zero
		p.snap.Loaded = false
	}
	p.snap.Deps = deps
	p.snap.Loading = true
	p.snap.Generation = gen
	p.mu.Unlock()

	value, err := p.fetch(fetchCtx, deps)
	cancel()

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		p.metrics.RecordRefresh(p.name, metrics.OutcomeSuperseded)
		return Snapshot[D, T]{}, ErrSuperseded
	}
	p.cancel = nil
	p.snap.Loading = false
	p.snap.UpdatedAt = p.now()
	if err != nil {
		var zero T
		p.snap.Value = zero
		p.snap.Loaded = false
		p.snap.Err = err
	} else {
		p.snap.Value = value
		p.snap.Loaded = true
		p.snap.Err = nil
	}
	snap := p.snap
	observers := append([]func(Snapshot[D, T]){}, p.observers...)
	p.mu.Unlock()

	if err != nil {
		p.metrics.RecordRefresh(p.name, metrics.OutcomeError)
	} else {
		p.metrics.RecordRefresh(p.name, metrics.OutcomeOK)
	}
	for _, fn := range observers {
		fn(snap)
	}
	return snap, err
}

// Patch applies an optimistic local update to a loaded value without
// refetching. fn must return a new value rather than mutate shared slices.
// It reports false when nothing is loaded.
func (p *Provider[D, T]) Patch(fn func(T) T) bool {
	p.mu.Lock()
	if !p.snap.Loaded || p.snap.Loading {
		p.mu.Unlock()
		return false
	}
	p.snap.Value = fn(p.snap.Value)
	p.snap.UpdatedAt = p.now()
	snap := p.snap
	observers := append([]func(Snapshot[D, T]){}, p.observers...)
	p.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	return true
}

// Reset cancels any in-flight fetch and drops all state
func (p *Provider[D, T]) Reset() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
	p.snap = Snapshot[D, T]{Generation: p.gen}
	snap := p.snap
	observers := append([]func(Snapshot[D, T]){}, p.observers...)
	p.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}
