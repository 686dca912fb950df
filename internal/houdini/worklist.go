package houdini

// WorkQueue is an ordered queue of implementation names that additionally
// enforces set-membership: enqueueing an already-present implementation is
// a no-op (spec.md §3 "Houdini state", §8 invariant 2 "Queue
// set-semantics").
type WorkQueue struct {
	items []string
	set   map[string]bool
}

// NewWorkQueue builds a queue seeded with the given implementations, in
// order.
func NewWorkQueue(seed []string) *WorkQueue {
	q := &WorkQueue{set: map[string]bool{}}
	for _, s := range seed {
		q.Enqueue(s)
	}
	return q
}

// Enqueue appends impl unless it is already present.
func (q *WorkQueue) Enqueue(impl string) {
	if q.set[impl] {
		return
	}
	q.set[impl] = true
	q.items = append(q.items, impl)
}

// Peek returns the head of the queue without removing it, and false if the
// queue is empty.
func (q *WorkQueue) Peek() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	return q.items[0], true
}

// Dequeue removes and returns the head of the queue, restoring |set| =
// |queue|.
func (q *WorkQueue) Dequeue() (string, bool) {
	head, ok := q.Peek()
	if !ok {
		return "", false
	}
	q.items = q.items[1:]
	delete(q.set, head)
	return head, true
}

// Contains reports whether impl is currently queued.
func (q *WorkQueue) Contains(impl string) bool { return q.set[impl] }

// Empty reports whether the queue has no pending implementations.
func (q *WorkQueue) Empty() bool { return len(q.items) == 0 }

// Len reports the number of pending implementations.
func (q *WorkQueue) Len() int { return len(q.items) }
