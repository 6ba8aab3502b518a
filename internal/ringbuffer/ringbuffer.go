package ringbuffer

// Buffer is an append-only ring buffer that retains at most cap items.
// When the cap is exceeded, the oldest items are dropped silently; overflow
// is a resource bound, not an error.
//
// It is not safe for concurrent use without external synchronization.
type Buffer[T any] struct {
	cap   int
	items []T
}

// New constructs a new Buffer retaining at most cap items.
// If cap <= 0, the buffer will retain zero items.
func New[T any](cap int) *Buffer[T] {
	if cap < 0 {
		cap = 0
	}
	return &Buffer[T]{cap: cap}
}

// Append adds an item and trims the buffer to its configured cap.
func (b *Buffer[T]) Append(item T) {
	if b == nil {
		return
	}
	if b.cap <= 0 {
		b.items = nil
		return
	}
	b.items = append(b.items, item)
	b.trim()
}

// Last returns the most recently appended item. For pointer element types
// the caller may mutate the pointee in place; that is how the console store
// coalesces repeated entries without re-appending.
func (b *Buffer[T]) Last() (T, bool) {
	var zero T
	if b == nil || len(b.items) == 0 {
		return zero, false
	}
	return b.items[len(b.items)-1], true
}

// SetCap changes the retention cap, dropping oldest items if the buffer is
// already over the new bound.
func (b *Buffer[T]) SetCap(cap int) {
	if b == nil {
		return
	}
	if cap < 0 {
		cap = 0
	}
	b.cap = cap
	if cap == 0 {
		b.items = nil
		return
	}
	b.trim()
}

// Cap returns the configured retention cap.
func (b *Buffer[T]) Cap() int {
	if b == nil {
		return 0
	}
	return b.cap
}

func (b *Buffer[T]) trim() {
	if len(b.items) > b.cap {
		b.items = b.items[len(b.items)-b.cap:]
	}
}

// Items returns a copy of the current contents, oldest first.
func (b *Buffer[T]) Items() []T {
	if b == nil {
		return nil
	}
	out := make([]T, len(b.items))
	copy(out, b.items)
	return out
}

// Clear removes all items.
func (b *Buffer[T]) Clear() {
	if b == nil {
		return
	}
	b.items = nil
}

// Len returns the current number of stored items.
func (b *Buffer[T]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}
