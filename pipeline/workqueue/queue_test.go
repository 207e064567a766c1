package workqueue_test

import (
	"sync"
	"testing"
	"time"

	"github.com/dargueta/pzip/pipeline/workqueue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue__FIFO(t *testing.T) {
	queue := workqueue.New[int]()
	for i := 0; i < 10; i++ {
		require.NoError(t, queue.Enqueue(i))
	}
	assert.Equal(t, 10, queue.Len())

	for i := 0; i < 10; i++ {
		item, ok := queue.Dequeue()
		require.True(t, ok)
		assert.Equal(t, i, item)
	}
	assert.Equal(t, 0, queue.Len())
}

// Interleaving enqueues and dequeues moves the head around the ring buffer, and
// growing it must keep everything in order.
func TestQueue__GrowsAcrossWraparound(t *testing.T) {
	queue := workqueue.New[int]()
	next := 0
	expected := 0

	for round := 0; round < 20; round++ {
		for i := 0; i < 50; i++ {
			require.NoError(t, queue.Enqueue(next))
			next++
		}
		for i := 0; i < 30; i++ {
			item, ok := queue.Dequeue()
			require.True(t, ok)
			require.Equal(t, expected, item)
			expected++
		}
	}

	queue.Close()
	for {
		item, ok := queue.Dequeue()
		if !ok {
			break
		}
		require.Equal(t, expected, item)
		expected++
	}
	assert.Equal(t, next, expected, "items were lost")
}

func TestQueue__DequeueBlocksUntilEnqueue(t *testing.T) {
	queue := workqueue.New[string]()
	result := make(chan string)

	go func() {
		item, _ := queue.Dequeue()
		result <- item
	}()

	select {
	case <-result:
		t.Fatal("dequeue returned from an empty, open queue")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, queue.Enqueue("work"))
	select {
	case item := <-result:
		assert.Equal(t, "work", item)
	case <-time.After(5 * time.Second):
		t.Fatal("dequeue never woke up")
	}
}

func TestQueue__CloseWakesAllConsumers(t *testing.T) {
	queue := workqueue.New[int]()
	const consumers = 8

	var wg sync.WaitGroup
	results := make(chan bool, consumers)
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := queue.Dequeue()
			results <- ok
		}()
	}

	queue.Close()
	wg.Wait()
	close(results)

	for ok := range results {
		assert.False(t, ok, "consumer got an item from an empty queue")
	}
	assert.True(t, queue.Closed())
}

func TestQueue__DrainsAfterClose(t *testing.T) {
	queue := workqueue.New[int]()
	require.NoError(t, queue.Enqueue(1))
	require.NoError(t, queue.Enqueue(2))
	queue.Close()

	item, ok := queue.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 1, item)

	item, ok = queue.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 2, item)

	_, ok = queue.Dequeue()
	assert.False(t, ok)
}

func TestQueue__EnqueueAfterClose(t *testing.T) {
	queue := workqueue.New[int]()
	queue.Close()
	queue.Close()
	assert.ErrorIs(t, queue.Enqueue(1), workqueue.ErrClosed)
	assert.Equal(t, 0, queue.Len())
}

// Many consumers racing a producer: every item is delivered exactly once.
func TestQueue__ConcurrentConsumersEachItemOnce(t *testing.T) {
	queue := workqueue.New[int]()
	const totalItems = 10000
	const consumers = 16

	seen := make([]int, totalItems)
	var seenLock sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				item, ok := queue.Dequeue()
				if !ok {
					return
				}
				seenLock.Lock()
				seen[item]++
				seenLock.Unlock()
			}
		}()
	}

	for i := 0; i < totalItems; i++ {
		require.NoError(t, queue.Enqueue(i))
	}
	queue.Close()
	wg.Wait()

	for i, count := range seen {
		require.Equalf(t, 1, count, "item %d delivered %d times", i, count)
	}
}
