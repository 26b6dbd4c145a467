package listwindow

import (
	"fmt"
	"testing"

	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/store"
)

func assertConsistent(t *testing.T, w *Window, s *store.Store) {
	t.Helper()
	snap := s.Snapshot()
	if w.RowCount() != len(snap) {
		t.Fatalf("RowCount = %d, snapshot has %d items", w.RowCount(), len(snap))
	}
	for i, want := range snap {
		got, ok := w.ItemAt(i)
		if !ok || got != want {
			t.Fatalf("row %d: got %+v (ok=%v), want %+v", i, got, ok, want)
		}
		row, ok := w.Row(i)
		if !ok || row != want.Title {
			t.Fatalf("row %d text: got %q (ok=%v), want %q", i, row, ok, want.Title)
		}
	}
	if _, ok := w.ItemAt(len(snap)); ok {
		t.Fatalf("ItemAt(%d) past the end reported ok", len(snap))
	}
	if _, ok := w.Row(-1); ok {
		t.Fatalf("Row(-1) reported ok")
	}
}

func TestReconcile_MatchesSnapshotAfterEveryMutation(t *testing.T) {
	s := store.New()
	w := New(s)
	w.Mount(s.Bus())
	defer w.Close()

	assertConsistent(t, w, s)
	a := s.Insert("a")
	assertConsistent(t, w, s)
	b := s.Insert("b")
	assertConsistent(t, w, s)
	s.Insert("c")
	assertConsistent(t, w, s)
	_ = s.Remove(b)
	assertConsistent(t, w, s)
	_ = s.Remove(a)
	assertConsistent(t, w, s)
	_ = s.Remove(a)
	assertConsistent(t, w, s)
}

func TestState_StaleUntilReconciled(t *testing.T) {
	s := store.New()
	redraws := 0
	var stateAtRedraw State
	w := New(s)
	w.redraw = func() {
		redraws++
		stateAtRedraw = w.State()
	}

	if w.State() != Stale {
		t.Fatalf("new window state = %v, want stale", w.State())
	}
	w.Mount(s.Bus())
	defer w.Close()
	if w.State() != Fresh {
		t.Fatalf("mounted window state = %v, want fresh", w.State())
	}

	s.Insert("x")
	if redraws != 2 {
		t.Fatalf("expected 2 redraws (mount + insert), got %d", redraws)
	}
	if stateAtRedraw != Fresh {
		t.Fatalf("redraw signalled while %v", stateAtRedraw)
	}
}

func TestRow_LazyAndRebuiltAfterChange(t *testing.T) {
	s := store.New()
	for i := 0; i < 100; i++ {
		s.Insert(fmt.Sprintf("item %d", i))
	}
	renders := 0
	w := New(s, WithRender(func(it model.Item) string {
		renders++
		return it.Label()
	}))
	w.Mount(s.Bus())
	defer w.Close()

	if renders != 0 {
		t.Fatalf("rows rendered eagerly: %d", renders)
	}
	if row, _ := w.Row(5); row != "#5 item 5" {
		t.Fatalf("Row(5) = %q", row)
	}
	_, _ = w.Row(5)
	if renders != 1 {
		t.Fatalf("expected cached row, rendered %d times", renders)
	}

	// Removing row 0 shifts everything; a cached row must not survive.
	_ = s.Remove(0)
	if row, _ := w.Row(5); row != "#6 item 6" {
		t.Fatalf("Row(5) after removal = %q, want \"#6 item 6\"", row)
	}

	w.SetRender(func(it model.Item) string { return "> " + it.Title })
	if row, _ := w.Row(0); row != "> item 1" {
		t.Fatalf("Row(0) after SetRender = %q", row)
	}
}

type fakeSource struct{ items []model.Item }

func (f *fakeSource) Snapshot() []model.Item { return f.items }

func TestReconcile_DoesNotAliasSourceSlice(t *testing.T) {
	src := &fakeSource{items: []model.Item{{ID: 1, Title: "one"}}}
	w := New(src)
	w.Reconcile()

	// A source that hands out its live slice cannot reach the bound rows.
	src.items[0].Title = "changed"
	if it, _ := w.ItemAt(0); it.Title != "one" {
		t.Fatalf("row changed with the source slice: %+v", it)
	}
}

func TestSelection_FollowsIdentifier(t *testing.T) {
	s := store.New()
	a := s.Insert("a")
	b := s.Insert("b")
	c := s.Insert("c")
	w := New(s)
	w.Mount(s.Bus())
	defer w.Close()

	if w.SelectedIndex() != 0 {
		t.Fatalf("top-aligned window should select the first row, got %d", w.SelectedIndex())
	}
	w.Select(2)

	_ = s.Remove(a)
	if it, ok := w.Selected(); !ok || it.ID != c || w.SelectedIndex() != 1 {
		t.Fatalf("selection did not follow id %d: %+v at %d", c, it, w.SelectedIndex())
	}

	_ = s.Remove(c)
	if it, ok := w.Selected(); !ok || it.ID != b {
		t.Fatalf("selection after removing the selected row: %+v ok=%v", it, ok)
	}

	_ = s.Remove(b)
	if _, ok := w.Selected(); ok || w.SelectedIndex() != -1 {
		t.Fatalf("empty window still has a selection at %d", w.SelectedIndex())
	}
}

func TestSelection_MoveAndSelectID(t *testing.T) {
	s := store.New()
	for _, title := range []string{"a", "b", "c", "d"} {
		s.Insert(title)
	}
	w := New(s, WithHeight(2))
	w.Mount(s.Bus())
	defer w.Close()

	tests := []struct {
		name       string
		move       func()
		wantIndex  int
		wantOffset int
	}{
		{name: "down", move: func() { w.MoveSelection(1) }, wantIndex: 1, wantOffset: 0},
		{name: "down scrolls", move: func() { w.MoveSelection(1) }, wantIndex: 2, wantOffset: 1},
		{name: "past end clamps", move: func() { w.MoveSelection(10) }, wantIndex: 3, wantOffset: 2},
		{name: "past start clamps", move: func() { w.MoveSelection(-10) }, wantIndex: 0, wantOffset: 0},
		{name: "select id", move: func() { w.SelectID(2) }, wantIndex: 2, wantOffset: 1},
	}

	for _, tt := range tests {
		tt.move()
		if w.SelectedIndex() != tt.wantIndex || w.Offset() != tt.wantOffset {
			t.Fatalf("%s: index=%d offset=%d, want index=%d offset=%d",
				tt.name, w.SelectedIndex(), w.Offset(), tt.wantIndex, tt.wantOffset)
		}
	}

	if w.SelectID(99) {
		t.Fatalf("SelectID of a missing id reported true")
	}
}

func TestBottomAlignment_TailsAppends(t *testing.T) {
	s := store.New()
	w := New(s, WithAlignment(Bottom), WithHeight(3))
	w.Mount(s.Bus())
	defer w.Close()

	s.Insert("a")
	if w.Padding() != 2 {
		t.Fatalf("Padding with one row = %d, want 2", w.Padding())
	}

	for _, title := range []string{"b", "c", "d", "e"} {
		s.Insert(title)
	}
	start, end := w.Visible()
	if start != 2 || end != 5 {
		t.Fatalf("Visible = [%d,%d), want [2,5)", start, end)
	}
	if it, _ := w.Selected(); it.Title != "e" {
		t.Fatalf("tailing window selected %+v, want the newest row", it)
	}
	if w.Padding() != 0 {
		t.Fatalf("Padding with a full viewport = %d", w.Padding())
	}
}

func TestBottomAlignment_ScrolledAwayStaysPut(t *testing.T) {
	s := store.New()
	w := New(s, WithAlignment(Bottom), WithHeight(3))
	w.Mount(s.Bus())
	defer w.Close()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		s.Insert(title)
	}

	w.Select(0)
	s.Insert("f")

	start, end := w.Visible()
	if start != 0 || end != 3 {
		t.Fatalf("Visible = [%d,%d), want [0,3)", start, end)
	}
	if it, _ := w.Selected(); it.Title != "a" {
		t.Fatalf("selection moved to %+v", it)
	}
}

func TestBottomAlignment_PinnedWithEarlierSelectionKeepsTail(t *testing.T) {
	s := store.New()
	w := New(s, WithAlignment(Bottom), WithHeight(3))
	w.Mount(s.Bus())
	defer w.Close()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		s.Insert(title)
	}

	// [2,5) is still the last page, so the viewport stays pinned.
	w.Select(2)
	s.Insert("f")

	if start, end := w.Visible(); start != 3 || end != 6 {
		t.Fatalf("Visible after append = [%d,%d), want [3,6)", start, end)
	}
	if it, _ := w.Selected(); it.Title != "c" {
		t.Fatalf("selection lost its item: %+v", it)
	}

	s.Insert("g")
	if start, end := w.Visible(); start != 4 || end != 7 {
		t.Fatalf("Visible after second append = [%d,%d), want [4,7)", start, end)
	}

	// Moving the selection brings it back into view.
	w.MoveSelection(1)
	if start, end := w.Visible(); w.SelectedIndex() != 3 || start != 3 || end != 6 {
		t.Fatalf("after MoveSelection: selected %d, Visible = [%d,%d)", w.SelectedIndex(), start, end)
	}
}

func TestSetHeight_PinnedWithEarlierSelectionKeepsTail(t *testing.T) {
	s := store.New()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		s.Insert(title)
	}
	w := New(s, WithAlignment(Bottom), WithHeight(4))
	w.Mount(s.Bus())
	defer w.Close()

	w.Select(1)
	w.SetHeight(2)
	if start, end := w.Visible(); start != 3 || end != 5 {
		t.Fatalf("Visible after SetHeight(2) = [%d,%d), want [3,5)", start, end)
	}
	if it, _ := w.Selected(); it.Title != "b" {
		t.Fatalf("selection lost its item: %+v", it)
	}
}

func TestTopAlignment_AppendDoesNotScroll(t *testing.T) {
	s := store.New()
	w := New(s, WithHeight(2))
	w.Mount(s.Bus())
	defer w.Close()
	for _, title := range []string{"a", "b", "c"} {
		s.Insert(title)
	}

	start, end := w.Visible()
	if start != 0 || end != 2 {
		t.Fatalf("Visible = [%d,%d), want [0,2)", start, end)
	}
	if w.Padding() != 0 {
		t.Fatalf("top-aligned window padded %d lines", w.Padding())
	}
}

func TestSetHeight_KeepsBottomPinned(t *testing.T) {
	s := store.New()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		s.Insert(title)
	}
	w := New(s, WithAlignment(Bottom))
	w.Mount(s.Bus())
	defer w.Close()

	if start, end := w.Visible(); start != 0 || end != 5 {
		t.Fatalf("unbounded Visible = [%d,%d)", start, end)
	}
	w.SetHeight(2)
	if start, end := w.Visible(); start != 3 || end != 5 {
		t.Fatalf("Visible after SetHeight(2) = [%d,%d), want [3,5)", start, end)
	}
	if w.Height() != 2 {
		t.Fatalf("Height = %d", w.Height())
	}
}

func TestScroll_Clamps(t *testing.T) {
	s := store.New()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		s.Insert(title)
	}
	w := New(s, WithHeight(2))
	w.Mount(s.Bus())
	defer w.Close()

	w.Scroll(10)
	if w.Offset() != 3 {
		t.Fatalf("Offset after Scroll(10) = %d, want 3", w.Offset())
	}
	w.Scroll(-10)
	if w.Offset() != 0 {
		t.Fatalf("Offset after Scroll(-10) = %d, want 0", w.Offset())
	}
}

func TestClose_Unsubscribes(t *testing.T) {
	s := store.New()
	w := New(s)
	w.Mount(s.Bus())
	if s.Bus().Len() != 1 {
		t.Fatalf("expected 1 subscription, got %d", s.Bus().Len())
	}

	w.Close()
	w.Close()
	if s.Bus().Len() != 0 {
		t.Fatalf("subscription leaked: %d", s.Bus().Len())
	}

	s.Insert("after close")
	if w.RowCount() != 0 {
		t.Fatalf("closed window rebuilt: %d rows", w.RowCount())
	}
	w.Reconcile()
	if w.RowCount() != 0 {
		t.Fatalf("Reconcile on a closed window rebuilt it")
	}

	// Remounting brings it back.
	w.Mount(s.Bus())
	defer w.Close()
	if w.RowCount() != 1 {
		t.Fatalf("remounted window has %d rows", w.RowCount())
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in     string
		want   Alignment
		wantOK bool
	}{
		{"top", Top, true},
		{"bottom", Bottom, true},
		{"middle", Top, false},
		{"", Top, false},
	}
	for _, tt := range tests {
		got, ok := ParseAlignment(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseAlignment(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
		if ok && got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}
