// Package queue provides the FIFO used to hold operations waiting for a device.
package queue

// Queue defines the interface of a FIFO queue.
//
// Implementations are not safe for concurrent use, callers serialize access.
type Queue[T any] interface {
	// Enqueue adds an item to the tail of the queue.
	Enqueue(item T)
	// Dequeue removes and returns the item at the head of the queue.
	// ok is false if the queue is empty.
	Dequeue() (item T, ok bool)
	// IsEmpty returns true if the queue is empty, false otherwise.
	IsEmpty() bool
	// Length returns the number of items in the queue.
	Length() int
}
