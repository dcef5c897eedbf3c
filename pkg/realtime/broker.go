package realtime

import (
	"context"
	"log"
	"sync"

	"agrocrm/pkg/metrics"
)

// Publisher is what services depend on to announce row changes.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

// Broker fans out change events to connected subscribers. A subscriber that
// is not keeping up misses events rather than blocking publishers.
type Broker struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}
	buffer  int
	closed  bool
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broker{clients: make(map[chan Event]struct{}), buffer: buffer}
}

// Publish sends under the read lock so Unsubscribe and Close, which take the
// write lock, cannot close a channel mid-send.
func (b *Broker) Publish(_ context.Context, ev Event) {
	if b == nil {
		return
	}
	metrics.IncChangeEvent(ev.Table, ev.Type)

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- ev:
		default:
			log.Printf("[realtime] subscriber lagging, dropped %s %s #%d", ev.Table, ev.Type, ev.ID)
		}
	}
}

// Subscribe returns an already closed channel once the broker is closed.
func (b *Broker) Subscribe() chan Event {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.clients[ch] = struct{}{}
	return ch
}

func (b *Broker) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
}

// Close ends every subscription; open streams see their channel closed and
// return.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.clients {
		delete(b.clients, ch)
		close(ch)
	}
}

func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}
