// Package workqueue provides a FIFO queue shared by one producer and any number
// of consumers.
//
// Consumers block in [Queue.Dequeue] until an item shows up or the producer
// calls [Queue.Close]. Every item is handed to exactly one consumer.

package workqueue

import (
	"errors"
	"sync"
)

// ErrClosed is returned when enqueuing to a queue that has been closed.
var ErrClosed = errors.New("work queue is closed")

const initialCapacity = 64

type Queue[T any] struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	// items is a ring buffer. The pending items are the `count` slots starting
	// at `head`, wrapping around the end.
	items  []T
	head   int
	count  int
	closed bool
}

func New[T any]() *Queue[T] {
	queue := &Queue[T]{items: make([]T, initialCapacity)}
	queue.nonEmpty = sync.NewCond(&queue.mu)
	return queue
}

// Enqueue appends an item to the tail of the queue and wakes one waiting
// consumer. It fails with [ErrClosed] if the queue has been closed.
func (queue *Queue[T]) Enqueue(item T) error {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	if queue.closed {
		return ErrClosed
	}
	if queue.count == len(queue.items) {
		queue.grow()
	}

	queue.items[(queue.head+queue.count)%len(queue.items)] = item
	queue.count++
	queue.nonEmpty.Signal()
	return nil
}

// grow doubles the capacity of the ring buffer, unwrapping the pending items to
// the front of the new buffer. The caller must hold the lock.
func (queue *Queue[T]) grow() {
	newItems := make([]T, 2*len(queue.items))
	n := copy(newItems, queue.items[queue.head:])
	copy(newItems[n:], queue.items[:queue.head])
	queue.items = newItems
	queue.head = 0
}

// Dequeue removes and returns the item at the head of the queue, blocking until
// one is available. If the queue is closed and empty it returns immediately with
// `ok` set to false.
func (queue *Queue[T]) Dequeue() (item T, ok bool) {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	// Waking up doesn't mean there's work: another consumer may have taken it
	// first. Only a closed, empty queue ends the wait.
	for queue.count == 0 && !queue.closed {
		queue.nonEmpty.Wait()
	}
	if queue.count == 0 {
		return item, false
	}

	var zero T
	item = queue.items[queue.head]
	// Drop our reference so the slot doesn't keep the item alive.
	queue.items[queue.head] = zero
	queue.head = (queue.head + 1) % len(queue.items)
	queue.count--
	return item, true
}

// Close signals that no more items will be enqueued and wakes every waiting
// consumer. Items already in the queue can still be dequeued. Closing a queue
// more than once is harmless.
func (queue *Queue[T]) Close() {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	queue.closed = true
	queue.nonEmpty.Broadcast()
}

// Len returns the number of items waiting in the queue.
func (queue *Queue[T]) Len() int {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return queue.count
}

// Closed returns true once [Queue.Close] has been called.
func (queue *Queue[T]) Closed() bool {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return queue.closed
}
