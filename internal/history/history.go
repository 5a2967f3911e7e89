// Package history implements a bounded snapshot log with a cursor for
// undo/redo. The log is generic over the snapshot state so it stays free of
// dashboard types; callers supply clone and equality functions, and every
// stored entry is an independent copy that never aliases live state.
package history

import "time"

// Entry is one immutable snapshot tagged with a timestamp and a
// human-readable action label (e.g. "move widget").
type Entry[T any] struct {
	Label   string
	TakenAt time.Time
	State   T
}

// Log holds an ordered sequence of snapshots plus a cursor pointing at the
// currently-applied one. Not safe for concurrent use; the owning store
// serializes access.
type Log[T any] struct {
	entries []Entry[T]
	cursor  int
	max     int
	clone   func(T) T
	equal   func(T, T) bool
	now     func() time.Time
}

// New creates a log bounded to max entries. clone is applied on the way in
// and on the way out so callers cannot mutate stored snapshots; equal is used
// to drop pushes identical to the current top.
func New[T any](max int, clone func(T) T, equal func(T, T) bool) *Log[T] {
	if max < 2 {
		max = 2
	}
	return &Log[T]{
		max:    max,
		clone:  clone,
		equal:  equal,
		now:    time.Now,
		cursor: -1,
	}
}

// SetNow overrides the timestamp source, for tests.
func (l *Log[T]) SetNow(now func() time.Time) { l.now = now }

// Reset discards all entries and seeds the log with an initial snapshot, so
// the first undo after a mutation can restore the pre-mutation state.
func (l *Log[T]) Reset(initial T) {
	l.entries = []Entry[T]{{Label: "initial", TakenAt: l.now(), State: l.clone(initial)}}
	l.cursor = 0
}

// Push records a new snapshot after a committed mutation. Any redo branch
// beyond the cursor is discarded, and the oldest entry is evicted once the
// bound is exceeded. Returns false when the snapshot equals the entry at the
// cursor and nothing was recorded.
func (l *Log[T]) Push(label string, state T) bool {
	if l.cursor >= 0 && l.equal(l.entries[l.cursor].State, state) {
		return false
	}
	// Truncate the redo branch: a mutation after an undo invalidates it.
	l.entries = l.entries[:l.cursor+1]
	l.entries = append(l.entries, Entry[T]{Label: label, TakenAt: l.now(), State: l.clone(state)})
	l.cursor++
	if len(l.entries) > l.max {
		over := len(l.entries) - l.max
		l.entries = append(l.entries[:0], l.entries[over:]...)
		l.cursor -= over
	}
	return true
}

// Undo moves the cursor one entry back and returns that snapshot.
// Returns false when already at the oldest entry.
func (l *Log[T]) Undo() (T, bool) {
	var zero T
	if !l.CanUndo() {
		return zero, false
	}
	l.cursor--
	return l.clone(l.entries[l.cursor].State), true
}

// Redo moves the cursor one entry forward and returns that snapshot.
// Returns false when already at the newest entry.
func (l *Log[T]) Redo() (T, bool) {
	var zero T
	if !l.CanRedo() {
		return zero, false
	}
	l.cursor++
	return l.clone(l.entries[l.cursor].State), true
}

// CanUndo reports whether an older snapshot exists.
func (l *Log[T]) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether a newer snapshot exists.
func (l *Log[T]) CanRedo() bool { return l.cursor >= 0 && l.cursor < len(l.entries)-1 }

// Len returns the number of stored snapshots.
func (l *Log[T]) Len() int { return len(l.entries) }

// Cursor returns the index of the currently-applied snapshot, or -1 when the
// log has not been seeded.
func (l *Log[T]) Cursor() int { return l.cursor }

// Labels returns the action labels in order, oldest first. The undo-history
// widget displays these.
func (l *Log[T]) Labels() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Label
	}
	return out
}
