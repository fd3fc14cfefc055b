package undo

import (
	"sync"
	"time"
)

// DefaultWindow is how long a deletion stays restorable.
const DefaultWindow = 10 * time.Second

// Buffer holds the most recent deletion so it can be undone within a short
// window. Depth is one: a second deletion replaces the first, matching the
// single undo toast the admin UI shows. Safe for concurrent use.
type Buffer[T any] struct {
	mu      sync.Mutex
	items   []T
	savedAt time.Time
	window  time.Duration
	now     func() time.Time
}

// NewBuffer creates a Buffer with the given undo window.
// PRE: window > 0 (DefaultWindow if zero)
// POST: Returns an empty buffer
func NewBuffer[T any](window time.Duration) *Buffer[T] {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Buffer[T]{window: window, now: time.Now}
}

// NewBufferWithClock creates a Buffer with an injectable clock for tests.
func NewBufferWithClock[T any](window time.Duration, now func() time.Time) *Buffer[T] {
	b := NewBuffer[T](window)
	if now != nil {
		b.now = now
	}
	return b
}

// Push stores a batch of deleted items, replacing any previous batch.
// PRE: items were just removed from durable storage
// POST: The batch is restorable until the window elapses
func (b *Buffer[T]) Push(items []T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = items
	b.savedAt = b.now()
}

// Take removes and returns the stored batch if the window has not elapsed.
// POST: Returns (items, true) at most once per Push; (nil, false) when the
// buffer is empty or expired
func (b *Buffer[T]) Take() ([]T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.items == nil {
		return nil, false
	}
	if b.now().Sub(b.savedAt) > b.window {
		b.items = nil
		return nil, false
	}
	items := b.items
	b.items = nil
	return items, true
}

// Peek reports whether an undoable batch is currently available.
// INVARIANT: does not consume the batch
func (b *Buffer[T]) Peek() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items != nil && b.now().Sub(b.savedAt) <= b.window
}
