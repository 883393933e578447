// Package bus provides a small in-process fan-out used to deliver
// asynchronous events (session changes, submission outcomes) to whatever
// screens happen to be mounted when the event lands.
package bus

import "sync"

// Bus fan-outs values of type T to all active subscribers. Delivery is
// in-order per subscriber; a full subscriber buffer drops the oldest
// pending event rather than blocking the publisher.
type Bus[T any] struct {
	mu   sync.RWMutex
	subs map[int]chan T
	next int
	size int
}

// New initialises an empty bus. size is the per-subscriber buffer depth.
func New[T any](size int) *Bus[T] {
	if size <= 0 {
		size = 8
	}
	return &Bus[T]{
		subs: make(map[int]chan T),
		size: size,
	}
}

// Subscribe registers a new subscriber and returns its channel together
// with a cancel function. Cancel is idempotent; after cancel the channel
// is closed and receives nothing further.
func (b *Bus[T]) Subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan T, b.size)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Publish delivers v to every active subscriber without blocking.
func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		for {
			select {
			case ch <- v:
			default:
				// Buffer full: evict the oldest pending event and retry.
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// Subscribers reports the number of active subscribers.
func (b *Bus[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
