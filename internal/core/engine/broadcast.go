package engine

import (
	"sync"

	"pomodoro/internal/core/model"
)

// DefaultSubscriberBuffer is the per-subscriber queue length.
const DefaultSubscriberBuffer = 16

// Broadcaster fans snapshots out to subscribers. A new subscriber first
// receives the latest snapshot, then every later one in publish order.
// When a subscriber's queue is full the oldest queued snapshot is dropped,
// never the newest, and Publish never blocks.
type Broadcaster struct {
	mu          sync.Mutex
	latest      model.Snapshot
	buffer      int
	subscribers map[*Subscription]struct{}
	closed      bool
}

// Subscription is one observer of a Broadcaster.
type Subscription struct {
	ch          chan model.Snapshot
	broadcaster *Broadcaster
}

// NewBroadcaster returns a broadcaster whose latest value is initial.
func NewBroadcaster(initial model.Snapshot, buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Broadcaster{
		latest:      initial,
		buffer:      buffer,
		subscribers: make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a new observer. On a closed broadcaster the returned
// subscription's channel is already closed.
func (broadcaster *Broadcaster) Subscribe() *Subscription {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()

	sub := &Subscription{
		ch:          make(chan model.Snapshot, broadcaster.buffer),
		broadcaster: broadcaster,
	}
	if broadcaster.closed {
		close(sub.ch)
		return sub
	}
	deliver(sub.ch, broadcaster.latest)
	broadcaster.subscribers[sub] = struct{}{}
	return sub
}

// Publish records snapshot as the latest value and queues it for every
// subscriber.
func (broadcaster *Broadcaster) Publish(snapshot model.Snapshot) {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	if broadcaster.closed {
		return
	}
	broadcaster.latest = snapshot
	for sub := range broadcaster.subscribers {
		deliver(sub.ch, snapshot)
	}
}

// Latest returns the most recently published snapshot.
func (broadcaster *Broadcaster) Latest() model.Snapshot {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	return broadcaster.latest
}

// Len returns the number of live subscriptions.
func (broadcaster *Broadcaster) Len() int {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	return len(broadcaster.subscribers)
}

// Close closes every subscription. Later Publish calls are ignored.
func (broadcaster *Broadcaster) Close() {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	if broadcaster.closed {
		return
	}
	broadcaster.closed = true
	for sub := range broadcaster.subscribers {
		close(sub.ch)
		delete(broadcaster.subscribers, sub)
	}
}

func (broadcaster *Broadcaster) remove(sub *Subscription) {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	if _, ok := broadcaster.subscribers[sub]; !ok {
		return
	}
	delete(broadcaster.subscribers, sub)
	close(sub.ch)
}

// Updates returns the channel snapshots are delivered on. It is closed by
// Unsubscribe or when the broadcaster closes.
func (sub *Subscription) Updates() <-chan model.Snapshot {
	return sub.ch
}

// Unsubscribe stops delivery. Safe to call more than once.
func (sub *Subscription) Unsubscribe() {
	sub.broadcaster.remove(sub)
}

// deliver queues snapshot, discarding the oldest queued values until it
// fits. Callers hold the broadcaster lock, so only the consumer competes.
func deliver(ch chan model.Snapshot, snapshot model.Snapshot) {
	for {
		select {
		case ch <- snapshot:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
