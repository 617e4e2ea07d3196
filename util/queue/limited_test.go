package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitedQueueFill(t *testing.T) {
	q := NewLimitedQueue[int](4)

	assert.Equal(t, 0, q.Len())

	for i := 0; i < 4; i++ {
		q.Push(i)
		assert.Equal(t, i+1, q.Len())
		assert.Equal(t, i, q.Last())
	}

	assert.True(t, q.Full())
	assert.Equal(t, []int{0, 1, 2, 3}, q.Slice())
}

func TestLimitedQueueEviction(t *testing.T) {
	q := NewLimitedQueue[int](3)

	for i := 0; i < 7; i++ {
		q.Push(i)
	}

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []int{4, 5, 6}, q.Slice())
	assert.Equal(t, 4, q.Get(0))
	assert.Equal(t, 6, q.Get(2))
	assert.Equal(t, 6, q.Last())
}
