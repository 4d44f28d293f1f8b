// Package notifier is an in-process publish/subscribe hub for change events.
// The HTTP event stream subscribes to it; services publish after every
// committed mutation.
package notifier

import (
	"context"
	"sync"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type Notifier struct {
	mu     sync.Mutex
	subs   map[int64]chan model.ChangeEvent
	nextID int64
	closed bool
}

func New() *Notifier {
	return &Notifier{
		subs: make(map[int64]chan model.ChangeEvent),
	}
}

// Subscribe registers a buffered receiver. The cancel func removes the
// subscription and closes the channel; it is safe to call more than once.
func (n *Notifier) Subscribe(buffer int) (<-chan model.ChangeEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan model.ChangeEvent, buffer)
	if n.closed {
		close(ch)
		return ch, func() {}
	}

	id := n.nextID
	n.nextID++
	n.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if _, ok := n.subs[id]; ok {
				delete(n.subs, id)
				close(ch)
			}
		})
	}

	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking. A
// subscriber whose buffer is full misses the event; stream consumers
// re-query on reconnect, so a dropped event only delays a refresh.
func (n *Notifier) Publish(ev model.ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}

	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
			logger.Warn(context.Background(), "change event dropped, subscriber buffer full",
				logger.String("collection", string(ev.Collection)),
			)
		}
	}
}

// Close terminates every subscription. Publish and Subscribe become no-ops.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true

	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}

	return nil
}
