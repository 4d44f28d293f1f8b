package mocks

import (
	"context"
	"sync"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

// TxManagerStub runs the transactional function directly; nesting behaves
// like the real manager's join semantics.
type TxManagerStub struct{}

func (TxManagerStub) Serializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// NotifierRecorder collects published events for assertions.
type NotifierRecorder struct {
	mu     sync.Mutex
	Events []model.ChangeEvent
}

func (n *NotifierRecorder) Publish(ev model.ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Events = append(n.Events, ev)
}

// ByCollection returns the recorded events for one collection.
func (n *NotifierRecorder) ByCollection(c model.Collection) []model.ChangeEvent {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []model.ChangeEvent
	for _, ev := range n.Events {
		if ev.Collection == c {
			out = append(out, ev)
		}
	}
	return out
}
