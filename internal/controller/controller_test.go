package controller

import (
	"errors"
	"testing"

	"github.com/idilsaglam/todos/internal/store"
)

func TestSubmit(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantErr   error
	}{
		{name: "plain", input: "Buy milk", wantTitle: "Buy milk"},
		{name: "trimmed", input: "  Walk dog \t", wantTitle: "Walk dog"},
		{name: "empty", input: "", wantErr: ErrEmptyTitle},
		{name: "whitespace only", input: "   \n", wantErr: ErrEmptyTitle},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := store.New()
			c := New(s)

			id, err := c.Submit(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if s.Len() != 0 || s.NextID() != 0 {
					t.Fatalf("rejected submit touched the store: len=%d next=%d", s.Len(), s.NextID())
				}
				return
			}
			snap := s.Snapshot()
			if len(snap) != 1 || snap[0].ID != id || snap[0].Title != tt.wantTitle {
				t.Fatalf("snapshot = %+v, want one item {%d %q}", snap, id, tt.wantTitle)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	s := store.New()
	c := New(s)
	id, _ := c.Submit("x")

	if err := c.Delete(id); err != nil {
		t.Fatalf("Delete(%d): %v", id, err)
	}
	if err := c.Delete(id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second Delete(%d) = %v, want ErrNotFound", id, err)
	}
	if s.Len() != 0 {
		t.Fatalf("store not empty: %+v", s.Snapshot())
	}
}
