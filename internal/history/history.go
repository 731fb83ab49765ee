// Package history keeps a linear undo/redo stack of snapshots.
package history

// History is not safe for concurrent use; each whiteboard connection owns its own.
type History[S any] struct {
	snapshots []S
	cursor    int
}

func New[S any]() *History[S] {
	return &History[S]{cursor: -1}
}

// Commit records s as the newest state, discarding every snapshot after the cursor.
func (h *History[S]) Commit(s S) {
	h.snapshots = append(h.snapshots[:h.cursor+1], s)
	h.cursor = len(h.snapshots) - 1
}

// Undo moves the cursor back and returns the snapshot to render. It is a no-op at the
// first snapshot or on an empty history.
func (h *History[S]) Undo() (S, bool) {
	if h.cursor <= 0 {
		var zero S
		return zero, false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

func (h *History[S]) Redo() (S, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		var zero S
		return zero, false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

// Clear records the empty canvas as a new snapshot.
func (h *History[S]) Clear(empty S) {
	h.Commit(empty)
}

func (h *History[S]) Current() (S, bool) {
	if h.cursor < 0 {
		var zero S
		return zero, false
	}
	return h.snapshots[h.cursor], true
}

func (h *History[S]) Cursor() int {
	return h.cursor
}

func (h *History[S]) Len() int {
	return len(h.snapshots)
}

func (h *History[S]) CanUndo() bool {
	return h.cursor > 0
}

func (h *History[S]) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Snapshots returns a copy of the recorded sequence.
func (h *History[S]) Snapshots() []S {
	out := make([]S, len(h.snapshots))
	copy(out, h.snapshots)
	return out
}
