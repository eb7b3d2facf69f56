package events

import "sync"

// Default queue capacities. State updates arrive far more often than
// scene switches, so the state queue is four times deeper.
const (
	DefaultStateQueueSize = 64
	DefaultSceneQueueSize = 16
)

// Queue is a fixed-capacity ring buffer with overwrite-oldest semantics.
//
// TrySend never blocks and never fails: when the buffer is full the
// oldest unread entry is silently dropped, so at most the N most recent
// entries are retained, in original relative order. TryRecv never blocks
// either. Producer and consumer may run concurrently; the mutex covers
// only index and slot manipulation.
//
// This is deliberately not a channel: Go channels have no overwrite-on-
// full policy, and the producer (the broker's network goroutine) must
// never stall behind a slow consumer.
type Queue[T any] struct {
	mu    sync.Mutex
	slots []T
	head  int // next write position
	tail  int // next read position
	full  bool
}

// NewQueue creates a queue retaining at most capacity entries.
// Panics if capacity < 1 — a zero-capacity queue cannot hold anything.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		panic("events: queue capacity must be at least 1")
	}
	return &Queue[T]{slots: make([]T, capacity)}
}

// TrySend appends v, overwriting the oldest unread entry if the queue is
// full. It always succeeds and never blocks.
func (q *Queue[T]) TrySend(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.slots[q.head] = v
	q.head = (q.head + 1) % len(q.slots)
	if q.full {
		q.tail = q.head // oldest entry was just overwritten
	}
	q.full = q.head == q.tail
}

// TryRecv returns the oldest pending entry, or (zero, false) if the
// queue is empty. It never blocks.
func (q *Queue[T]) TryRecv() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == q.tail && !q.full {
		var zero T
		return zero, false
	}
	v := q.slots[q.tail]
	q.tail = (q.tail + 1) % len(q.slots)
	q.full = false
	return v, true
}

// Len returns the number of pending entries.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.full {
		return len(q.slots)
	}
	return (q.head - q.tail + len(q.slots)) % len(q.slots)
}

// Cap returns the queue's fixed capacity.
func (q *Queue[T]) Cap() int {
	return len(q.slots)
}
