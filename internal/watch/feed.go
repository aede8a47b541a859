// Package watch keeps in-memory subscribers synchronized with a stored
// collection.  A Feed owns one query; every time the collection changes the
// feed re-runs the query and hands each subscriber the complete current
// snapshot, never a delta.  Consumers replace their state with each
// delivery.  Subscriptions are independent of each other: two admin tabs
// watching the same collection each get their own snapshots with no shared
// cache and no ordering between them.
package watch

import (
	"context"
	"sync"
)

// ListFunc runs the feed's query and returns the full current result set
// in its declared order.
type ListFunc[T any] func(ctx context.Context) ([]T, error)

// subscriber is one registered listener.  Its mutex serializes snapshot
// delivery so that Cancel can guarantee silence: once Cancel has taken the
// lock and marked the subscriber closed, no further callback can start.
type subscriber[T any] struct {
	mu       sync.Mutex
	closed   bool
	seq      uint64
	onUpdate func([]T)
	onError  func(error)
}

// deliver hands a snapshot to the subscriber unless it has been closed or
// has already seen a later one.  Snapshots race only between a subscribe's
// initial query and a concurrent change push; dropping the lower sequence
// keeps every observed delivery the full current set, so a removed item
// can never reappear in a later delivery.
func (s *subscriber[T]) deliver(seq uint64, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq <= s.seq {
		return
	}
	s.seq = seq
	s.onUpdate(items)
}

// fail invokes onError once and closes the subscriber.  A failed
// subscription is terminated; the caller must subscribe again.
func (s *subscriber[T]) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.onError(err)
}

// Feed fans full query snapshots out to its subscribers.  seq orders the
// snapshots: every query is assigned its sequence under mu before it runs,
// so a delivery that lost the race to a fresher one identifies itself as
// stale.
type Feed[T any] struct {
	mu   sync.Mutex
	list ListFunc[T]
	subs map[uint64]*subscriber[T]
	next uint64
	seq  uint64
}

// NewFeed builds a Feed over the given query.
func NewFeed[T any](list ListFunc[T]) *Feed[T] {
	return &Feed[T]{list: list, subs: make(map[uint64]*subscriber[T])}
}

// Subscribe registers a listener and immediately delivers the current
// snapshot, matching the store's subscribe-then-push contract.  If the
// initial query fails, onError fires once and the subscription is never
// established.  The returned cancel is idempotent; after it returns,
// neither callback will fire again even if a change was in flight.
//
// Registration happens before the initial query, in the same critical
// section that assigns the query's sequence.  A change pushed while the
// initial query is still running therefore reaches this subscriber with a
// higher sequence, and whichever snapshot arrives second is resolved by
// deliver: the stale one is dropped instead of overwriting fresh state.
func (f *Feed[T]) Subscribe(ctx context.Context, onUpdate func([]T), onError func(error)) (cancel func()) {
	sub := &subscriber[T]{onUpdate: onUpdate, onError: onError}

	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = sub
	f.seq++
	seq := f.seq
	f.mu.Unlock()

	remove := func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}

	items, err := f.list(ctx)
	if err != nil {
		sub.fail(err)
		remove()
		return func() {}
	}

	sub.deliver(seq, items)

	return func() {
		sub.mu.Lock()
		sub.closed = true
		sub.mu.Unlock()
		remove()
	}
}

// Invalidate re-runs the query and pushes the fresh snapshot to every live
// subscriber.  Mutating handlers call this after a successful create,
// update or delete.  If the query fails, every subscriber's onError fires
// once and those subscriptions terminate.  Each subscriber receives its own
// copy of the snapshot so one consumer cannot mutate another's view.
func (f *Feed[T]) Invalidate(ctx context.Context) {
	f.mu.Lock()
	targets := make([]*subscriber[T], 0, len(f.subs))
	for _, s := range f.subs {
		targets = append(targets, s)
	}
	f.seq++
	seq := f.seq
	f.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	items, err := f.list(ctx)
	if err != nil {
		for _, s := range targets {
			s.fail(err)
		}
		f.mu.Lock()
		for id, s := range f.subs {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				delete(f.subs, id)
			}
		}
		f.mu.Unlock()
		return
	}

	for _, s := range targets {
		snapshot := make([]T, len(items))
		copy(snapshot, items)
		s.deliver(seq, snapshot)
	}
}

// Len reports the number of live subscriptions, mainly for observability.
func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
