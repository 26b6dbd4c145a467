package store

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError.
var ErrNotFound = errors.New("item not found")

// NotFoundError is returned by Remove for an id that is not in the store.
type NotFoundError struct {
	ID uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %d", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
