package queue

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type msgItem struct {
	data string
}

func TestSliceQueue(t *testing.T) {
	assert := assert.New(t)

	t.Run("Empty Queue", func(t *testing.T) {
		q := NewSliceQueue[*msgItem](1)

		assert.True(q.IsEmpty())
		assert.Equal(0, q.Length())

		item, ok := q.Dequeue()
		assert.False(ok)
		assert.Nil(item)
	})

	t.Run("Enqueue and Dequeue", func(t *testing.T) {
		q := NewSliceQueue[*msgItem](1)

		item1 := &msgItem{"data1"}
		q.Enqueue(item1)
		assert.False(q.IsEmpty())
		assert.Equal(1, q.Length())

		item2 := &msgItem{"data2"}
		q.Enqueue(item2)
		assert.Equal(2, q.Length())

		dequeued, ok := q.Dequeue()
		assert.True(ok)
		assert.Same(item1, dequeued)
		assert.Equal(1, q.Length())

		dequeued, ok = q.Dequeue()
		assert.True(ok)
		assert.Same(item2, dequeued)
		assert.True(q.IsEmpty())

		_, ok = q.Dequeue()
		assert.False(ok)
	})

	t.Run("Release consumed items", func(t *testing.T) {
		q := NewSliceQueue[*msgItem](4)
		for i := 0; i < 4; i++ {
			q.Enqueue(&msgItem{strconv.Itoa(i)})
		}
		for i := 0; i < 3; i++ {
			_, ok := q.Dequeue()
			assert.True(ok)
		}

		// compaction on the next enqueue keeps the remaining order
		q.Enqueue(&msgItem{"4"})
		assert.Equal(2, q.Length())

		item, ok := q.Dequeue()
		assert.True(ok)
		assert.Equal("3", item.data)
		item, ok = q.Dequeue()
		assert.True(ok)
		assert.Equal("4", item.data)
		assert.True(q.IsEmpty())
	})

	t.Run("FIFO order with interleaved operations", func(t *testing.T) {
		q := NewSliceQueue[int](2)
		next := 0
		expected := 0

		for round := 0; round < 100; round++ {
			for i := 0; i < 3; i++ {
				q.Enqueue(next)
				next++
			}
			for i := 0; i < 2; i++ {
				v, ok := q.Dequeue()
				assert.True(ok)
				assert.Equal(expected, v, "round "+strconv.Itoa(round))
				expected++
			}
		}

		assert.Equal(next-expected, q.Length())
		for !q.IsEmpty() {
			v, _ := q.Dequeue()
			assert.Equal(expected, v)
			expected++
		}
		assert.Equal(next, expected)
	})
}
