package queue

// LimitedQueue is a fixed-capacity indexed queue: once full, pushing a new
// element evicts the oldest one. Index 0 always refers to the oldest element
// still present.
type LimitedQueue[T any] struct {
	items []T
	end   int
	len   int
}

func NewLimitedQueue[T any](capacity int) *LimitedQueue[T] {
	return &LimitedQueue[T]{
		items: make([]T, capacity),
		end:   capacity - 1,
	}
}

func (q *LimitedQueue[T]) Push(elem T) {
	q.end = (q.end + 1) % len(q.items)
	q.items[q.end] = elem

	if q.len < len(q.items) {
		q.len++
	}
}

func (q *LimitedQueue[T]) Len() int {
	return q.len
}

func (q *LimitedQueue[T]) Full() bool {
	return q.len == len(q.items)
}

// Get returns the idx-th oldest element. idx must be in [0, Len()).
func (q *LimitedQueue[T]) Get(idx int) T {
	if q.len == len(q.items) {
		idx = (idx + q.end + 1) % len(q.items)
	}

	return q.items[idx]
}

func (q *LimitedQueue[T]) Last() T {
	return q.items[q.end]
}

// Slice returns the queued elements oldest-first as a fresh slice.
func (q *LimitedQueue[T]) Slice() []T {
	out := make([]T, 0, q.len)

	for i := 0; i < q.len; i++ {
		out = append(out, q.Get(i))
	}

	return out
}
