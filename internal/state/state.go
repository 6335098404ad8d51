// Package state implements the reactive state containers the lookup and
// theme services are built on.
//
// WHY A STATE CONTAINER?
// The UI needs to observe three things about every network request: the data
// (once loaded), whether a request is in flight, and the error (if it
// failed). Frontend frameworks model this with "signals" — a cell of state
// that notifies subscribers when it changes. Go has no language-level
// reactivity, so we make the same idea explicit: a Cell holds one value,
// Set swaps in a whole new value, and subscribers are called synchronously
// after every swap.
//
// THE WHOLE-RECORD REPLACEMENT RULE:
// A Request is never mutated field by field. Every transition builds a
// complete new Request and swaps it in atomically, so an observer reading
// the cell never sees a half-updated record (loading=true with stale data
// still attached, for example). All three transitions go through the
// constructor helpers below — nothing else should build a Request by hand.
package state

import "sync"

// Request is the tri-field record describing one request lifecycle.
//
// Exactly one of these holds at any observation point:
//   - Loading:            a fetch is in flight (Data nil, Err empty)
//   - settled with data:  Data non-nil (Loading false, Err empty)
//   - settled with error: Err non-empty (Loading false, Data nil)
//
// The zero value (all absent, not loading) is the "not yet asked" state a
// coordinator starts in and returns to on Clear.
type Request[T any] struct {
	Data    *T
	Loading bool
	Err     string
}

// Loading returns the in-flight record: prior data and error are cleared,
// per the invariant that a fresh attempt never shows stale results.
func Loading[T any]() Request[T] {
	return Request[T]{Loading: true}
}

// Loaded returns a record settled with data.
func Loaded[T any](data T) Request[T] {
	return Request[T]{Data: &data}
}

// Failed returns a record settled with an error message.
func Failed[T any](msg string) Request[T] {
	return Request[T]{Err: msg}
}

// Settled reports whether the request finished, with either data or error.
func (r Request[T]) Settled() bool {
	return !r.Loading && (r.Data != nil || r.Err != "")
}

// Subscriber is called synchronously after every value swap, with the new
// value. It runs on the goroutine that called Set, outside the cell's lock,
// so a subscriber may read the cell but must not call Set re-entrantly.
type Subscriber[T any] func(T)

// Cell is a single reactive value with subscribe/notify.
//
// CONCURRENCY:
// The original design runs on a single-threaded event loop, where "no two
// transitions interleave" comes for free. In Go the fetches complete on
// their own goroutines, so the cell takes a mutex around the swap and the
// subscriber list. The observable contract is the same: every reader sees
// either the old record or the new one, never a mixture.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]Subscriber[T]
	next  int
}

// NewCell creates a Cell holding the given initial value.
// No notification fires for the initial value — callers that need a
// "sync once at construction" behaviour (the theme service does) call
// Set after subscribing.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[int]Subscriber[T]),
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set swaps in a new value and synchronously notifies every subscriber.
// The swap happens under the lock; notifications happen after it is
// released, in registration order.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	c.value = value
	// Snapshot the subscriber list so an Unsubscribe racing with Set
	// can't mutate the map we're ranging over.
	subs := make([]Subscriber[T], 0, len(c.subs))
	for id := 0; id < c.next; id++ {
		if sub, ok := c.subs[id]; ok {
			subs = append(subs, sub)
		}
	}
	c.mu.Unlock()

	for _, sub := range subs {
		sub(value)
	}
}

// Subscribe registers a subscriber and returns an unsubscribe function.
//
// RETURNING A CANCEL FUNC:
// This mirrors context.WithCancel: instead of handing out an ID the caller
// has to pass back, we return a closure that knows how to remove exactly
// this subscriber. Calling it twice is harmless.
func (c *Cell[T]) Subscribe(sub Subscriber[T]) (unsubscribe func()) {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = sub
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
