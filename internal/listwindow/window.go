// Package listwindow keeps the row bookkeeping for a virtualized list view.
//
// A Window never owns data. On every change notification it takes a fresh
// snapshot from its Source, binds a row producer to that snapshot and
// throws away every row it rendered before. Rows are rendered lazily, on
// the first Row call for an index, and can be dropped and rebuilt at any
// time because rendering is a pure function of the index and the bound
// snapshot.
//
// A Window is not safe for concurrent use.
package listwindow

import (
	"slices"

	"github.com/idilsaglam/todos/internal/changebus"
	"github.com/idilsaglam/todos/internal/model"
)

// State is the rebuild state of a Window.
type State int

const (
	// Stale means a change was signalled and the rows are not rebuilt yet.
	Stale State = iota
	// Fresh means the rows reflect the latest snapshot.
	Fresh
)

func (s State) String() string {
	if s == Fresh {
		return "fresh"
	}
	return "stale"
}

// Alignment decides where rows sit when the viewport is not full and
// whether the viewport follows appended rows.
type Alignment int

const (
	// Top anchors rows to the top of the viewport.
	Top Alignment = iota
	// Bottom anchors rows to the bottom; a viewport showing the last row
	// keeps showing it after rows are appended.
	Bottom
)

// ParseAlignment maps "top" and "bottom" to an Alignment.
func ParseAlignment(s string) (Alignment, bool) {
	switch s {
	case "top":
		return Top, true
	case "bottom":
		return Bottom, true
	}
	return Top, false
}

func (a Alignment) String() string {
	if a == Bottom {
		return "bottom"
	}
	return "top"
}

// Source provides the snapshot a Window is rebuilt from.
type Source interface {
	Snapshot() []model.Item
}

// RenderFunc turns one item into its row text.
type RenderFunc func(model.Item) string

// Window is the derived, disposable view of a Source.
type Window struct {
	src    Source
	align  Alignment
	height int
	render RenderFunc
	redraw func()

	state    State
	rowCount int
	produce  func(int) (model.Item, bool)
	rows     map[int]string

	offset     int
	selected   int
	selectedID uint64

	sub    *changebus.Subscription
	closed bool
}

// Option configures a Window.
type Option func(*Window)

// WithAlignment sets the alignment policy. The default is Top.
func WithAlignment(a Alignment) Option { return func(w *Window) { w.align = a } }

// WithHeight sets the viewport height in rows. Zero or less shows every row.
func WithHeight(n int) Option { return func(w *Window) { w.height = n } }

// WithRender sets the row renderer. The default renders the title.
func WithRender(fn RenderFunc) Option {
	return func(w *Window) {
		if fn != nil {
			w.render = fn
		}
	}
}

// WithRedraw sets the callback that tells the owning view to redraw.
func WithRedraw(fn func()) Option { return func(w *Window) { w.redraw = fn } }

// New returns a Stale window with no rows. Call Mount or Reconcile to
// populate it.
func New(src Source, opts ...Option) *Window {
	w := &Window{
		src:      src,
		render:   func(it model.Item) string { return it.Title },
		state:    Stale,
		selected: -1,
	}
	w.produce = bind(nil)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Mount subscribes the window to bus and rebuilds it once.
func (w *Window) Mount(bus *changebus.Bus) {
	w.sub.Close()
	w.closed = false
	w.sub = bus.Watch(w.Reconcile)
	w.Reconcile()
}

// Close unsubscribes the window. Notifications already in flight are
// ignored afterwards. Close is idempotent.
func (w *Window) Close() {
	w.sub.Close()
	w.sub = nil
	w.closed = true
}

// Reconcile rebuilds the window from a fresh snapshot of its source.
func (w *Window) Reconcile() {
	if w.closed {
		return
	}
	w.state = Stale
	pinned := w.atEnd()
	prevIndex, prevID := w.selected, w.selectedID
	// a bottom-aligned window tailing the list keeps tailing it.
	tail := w.align == Bottom && pinned && prevIndex >= 0 && prevIndex == w.rowCount-1

	snap := slices.Clone(w.src.Snapshot())
	w.rowCount = len(snap)
	w.produce = bind(snap)
	w.rows = nil

	w.restoreSelection(snap, prevIndex, prevID)
	if tail && len(snap) > 0 {
		w.selected = len(snap) - 1
		w.selectedID = snap[w.selected].ID
	}
	w.anchor(pinned)

	w.state = Fresh
	if w.redraw != nil {
		w.redraw()
	}
}

// bind closes over an immutable snapshot. Nothing outside the closure
// holds snap, so a later rebuild can never change what it returns.
func bind(snap []model.Item) func(int) (model.Item, bool) {
	return func(i int) (model.Item, bool) {
		if i < 0 || i >= len(snap) {
			return model.Item{}, false
		}
		return snap[i], true
	}
}

// restoreSelection follows the selected item by id. When that item is
// gone the selection stays at the same position, clamped to the new rows.
func (w *Window) restoreSelection(snap []model.Item, prevIndex int, prevID uint64) {
	switch {
	case len(snap) == 0:
		w.selected = -1
		return
	case prevIndex < 0:
		if w.align == Bottom {
			w.selected = len(snap) - 1
		} else {
			w.selected = 0
		}
	default:
		if i := model.IndexOf(snap, prevID); i >= 0 {
			w.selected = i
		} else {
			w.selected = min(prevIndex, len(snap)-1)
		}
	}
	w.selectedID = snap[w.selected].ID
}

// State reports whether the rows reflect the latest notification.
func (w *Window) State() State { return w.state }

// Alignment returns the alignment policy.
func (w *Window) Alignment() Alignment { return w.align }

// RowCount is the number of rows in the bound snapshot.
func (w *Window) RowCount() int { return w.rowCount }

// ItemAt returns the item behind row i.
func (w *Window) ItemAt(i int) (model.Item, bool) { return w.produce(i) }

// Row returns the rendered text for row i, rendering it on first use.
func (w *Window) Row(i int) (string, bool) {
	if s, ok := w.rows[i]; ok {
		return s, true
	}
	it, ok := w.produce(i)
	if !ok {
		return "", false
	}
	s := w.render(it)
	if w.rows == nil {
		w.rows = make(map[int]string)
	}
	w.rows[i] = s
	return s, true
}

// SetRender replaces the renderer and discards rendered rows.
func (w *Window) SetRender(fn RenderFunc) {
	if fn == nil {
		return
	}
	w.render = fn
	w.rows = nil
}

// SetHeight resizes the viewport. A bottom-aligned window that was showing
// the last row keeps showing it.
func (w *Window) SetHeight(n int) {
	pinned := w.atEnd()
	w.height = n
	w.anchor(pinned)
}

// Height returns the viewport height; zero or less means unbounded.
func (w *Window) Height() int { return w.height }

// Offset returns the index of the first visible row.
func (w *Window) Offset() int { return w.offset }

// Visible returns the half-open range of row indexes in the viewport.
func (w *Window) Visible() (start, end int) {
	if w.height <= 0 {
		return 0, w.rowCount
	}
	return w.offset, min(w.offset+w.height, w.rowCount)
}

// Padding is the number of blank lines a bottom-aligned view puts above
// its rows when they do not fill the viewport.
func (w *Window) Padding() int {
	if w.align != Bottom || w.height <= 0 {
		return 0
	}
	start, end := w.Visible()
	return max(0, w.height-(end-start))
}

// Scroll moves the viewport by delta rows without moving the selection.
func (w *Window) Scroll(delta int) {
	w.offset += delta
	w.clampOffset()
}

// Selected returns the selected item, if any.
func (w *Window) Selected() (model.Item, bool) {
	if w.selected < 0 {
		return model.Item{}, false
	}
	return w.produce(w.selected)
}

// SelectedIndex returns the selected row, or -1.
func (w *Window) SelectedIndex() int { return w.selected }

// Select moves the selection to row i, clamped to the rows.
func (w *Window) Select(i int) {
	if w.rowCount == 0 {
		return
	}
	w.selected = max(0, min(i, w.rowCount-1))
	it, _ := w.produce(w.selected)
	w.selectedID = it.ID
	w.ensureVisible()
}

// SelectID selects the row holding id. It reports false when no row does.
func (w *Window) SelectID(id uint64) bool {
	for i := 0; i < w.rowCount; i++ {
		if it, _ := w.produce(i); it.ID == id {
			w.Select(i)
			return true
		}
	}
	return false
}

// MoveSelection moves the selection by delta rows.
func (w *Window) MoveSelection(delta int) {
	if w.selected < 0 {
		return
	}
	w.Select(w.selected + delta)
}

func (w *Window) atEnd() bool {
	if w.height <= 0 {
		return true
	}
	return w.offset+w.height >= w.rowCount
}

// anchor re-positions the viewport after the rows or the height changed.
// A pinned bottom-aligned viewport stays on the last rows even when that
// scrolls the selection out of view; otherwise the selection is kept
// visible.
func (w *Window) anchor(pinned bool) {
	if w.align == Bottom && pinned {
		w.offset = w.rowCount - w.height
		w.clampOffset()
		return
	}
	w.clampOffset()
	w.ensureVisible()
}

func (w *Window) clampOffset() {
	if w.height <= 0 {
		w.offset = 0
		return
	}
	w.offset = max(0, min(w.offset, w.rowCount-w.height))
}

func (w *Window) ensureVisible() {
	if w.height <= 0 || w.selected < 0 {
		return
	}
	if w.selected < w.offset {
		w.offset = w.selected
	}
	if w.selected >= w.offset+w.height {
		w.offset = w.selected - w.height + 1
	}
}
