// Package store owns the ordered todo collection and its id counter.
//
// A Store is created once at startup and handed to whoever needs it; there
// is no package-level instance. It is not safe for concurrent use: every
// call is expected on the goroutine that runs the UI loop, and no call
// yields between applying a mutation and notifying observers.
package store

import (
	"log/slog"

	"github.com/idilsaglam/todos/internal/changebus"
	"github.com/idilsaglam/todos/internal/logging"
	"github.com/idilsaglam/todos/internal/model"
)

// Store is the single source of truth for the item list.
type Store struct {
	items  []model.Item
	nextID uint64
	bus    *changebus.Bus
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation traces and observer failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns an empty store whose first id is 0.
func New(opts ...Option) *Store {
	s := &Store{
		bus:    changebus.New(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bus returns the change bus the store notifies after every mutation.
func (s *Store) Bus() *changebus.Bus { return s.bus }

// Insert appends a new item and returns its id. Any title is accepted,
// including the empty string.
func (s *Store) Insert(title string) uint64 {
	id := s.nextID
	s.items = append(s.items, model.Item{ID: id, Title: title})
	s.nextID++
	s.logger.Debug("item inserted", "id", id, "count", len(s.items))
	s.notify()
	return id
}

// Remove deletes the item with the given id, keeping the order of the
// others. An unknown id returns a *NotFoundError and changes nothing;
// no notification is raised for it.
func (s *Store) Remove(id uint64) error {
	i := model.IndexOf(s.items, id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	// fresh backing array: snapshots taken earlier must never see the shift.
	next := make([]model.Item, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	s.items = append(next, s.items[i+1:]...)
	s.logger.Debug("item removed", "id", id, "count", len(s.items))
	s.notify()
	return nil
}

// Snapshot returns a copy of the items in display order.
func (s *Store) Snapshot() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of stored items.
func (s *Store) Len() int { return len(s.items) }

// NextID returns the id the next Insert will assign.
func (s *Store) NextID() uint64 { return s.nextID }

func (s *Store) notify() {
	// The mutation is already committed; observer failures are reported,
	// not rolled back.
	if err := s.bus.Notify(); err != nil {
		s.logger.Warn("observer failed", "error", err)
	}
}
