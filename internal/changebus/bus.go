// Package changebus delivers "the collection changed" signals from the
// store to its observers.
//
// The signal carries no payload. Observers re-read the store to find out
// what changed, so a slow or late observer can never act on a stale diff.
//
// A Bus is not safe for concurrent use. Subscribe, Unsubscribe and Notify
// are expected to run on the single goroutine that owns the UI loop.
package changebus

import (
	"errors"
	"fmt"
)

// ErrObserverFailure matches every *ObserverError returned by Notify.
var ErrObserverFailure = errors.New("observer failure")

// Handle identifies one subscription. The zero Handle is never issued.
type Handle uint64

// ObserverError reports an observer that panicked during Notify.
type ObserverError struct {
	Handle Handle
	Value  any
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("observer %d failed: %v", e.Handle, e.Value)
}

func (e *ObserverError) Is(target error) bool { return target == ErrObserverFailure }

// Unwrap exposes the panic value when it was itself an error.
func (e *ObserverError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

type observer struct {
	handle Handle
	fn     func()
}

// Bus holds the ordered list of observers.
type Bus struct {
	observers []observer
	last      Handle
}

// New returns an empty bus.
func New() *Bus { return &Bus{} }

// Subscribe registers fn and returns a handle for Unsubscribe. Registering
// the same function twice yields two independent subscriptions.
func (b *Bus) Subscribe(fn func()) Handle {
	b.last++
	b.observers = append(b.observers, observer{handle: b.last, fn: fn})
	return b.last
}

// Unsubscribe removes the observer registered under h. Unknown or already
// removed handles are ignored.
func (b *Bus) Unsubscribe(h Handle) {
	for i, o := range b.observers {
		if o.handle == h {
			// copy instead of in-place shifting: a Notify in progress
			// still iterates the slice it started with.
			next := make([]observer, 0, len(b.observers)-1)
			next = append(next, b.observers[:i]...)
			b.observers = append(next, b.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int { return len(b.observers) }

// Notify calls every observer subscribed when Notify starts, in
// subscription order. Observers added during the round wait for the next
// one; observers removed during the round are skipped. A panicking
// observer does not stop delivery to the rest; its failure is collected
// into the returned error.
func (b *Bus) Notify() error {
	current := b.observers
	var errs []error
	for _, o := range current {
		if !b.subscribed(o.handle) {
			continue
		}
		if err := deliver(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) subscribed(h Handle) bool {
	for _, o := range b.observers {
		if o.handle == h {
			return true
		}
	}
	return false
}

func deliver(o observer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ObserverError{Handle: o.handle, Value: r}
		}
	}()
	o.fn()
	return nil
}

// Subscription ties a handle to its bus so callers can release it with a
// single deferred Close.
type Subscription struct {
	bus    *Bus
	handle Handle
}

// Watch subscribes fn and wraps the handle in a Subscription.
func (b *Bus) Watch(fn func()) *Subscription {
	return &Subscription{bus: b, handle: b.Subscribe(fn)}
}

// Handle returns the underlying subscription handle.
func (s *Subscription) Handle() Handle { return s.handle }

// Close unsubscribes. Calling it more than once is a no-op.
func (s *Subscription) Close() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.Unsubscribe(s.handle)
	s.bus = nil
}
