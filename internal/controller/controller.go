// Package controller forwards UI intents to the store. It keeps no item
// state of its own.
package controller

import (
	"errors"
	"strings"

	"github.com/idilsaglam/todos/internal/store"
)

// ErrEmptyTitle is returned by Submit for blank input.
var ErrEmptyTitle = errors.New("title cannot be empty")

// Controller is what the view calls when the user submits or deletes.
type Controller struct {
	store *store.Store
}

func New(s *store.Store) *Controller {
	return &Controller{store: s}
}

// Submit trims title and inserts it. Blank titles are rejected here, not
// in the store, which accepts any text.
func (c *Controller) Submit(title string) (uint64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, ErrEmptyTitle
	}
	return c.store.Insert(title), nil
}

// Delete removes the item with the given id. An unknown id yields
// store.ErrNotFound.
func (c *Controller) Delete(id uint64) error {
	return c.store.Remove(id)
}
