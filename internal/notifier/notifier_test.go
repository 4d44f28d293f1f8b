package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

func TestNotifierPublishFanOut(t *testing.T) {
	t.Parallel()

	n := New()
	defer n.Close() //nolint:errcheck

	a, cancelA := n.Subscribe(4)
	b, cancelB := n.Subscribe(4)
	defer cancelA()
	defer cancelB()

	ev := model.NewChangeEvent(model.CollectionComponents, 1, model.ActionCreated)
	n.Publish(ev)

	gotA := <-a
	gotB := <-b
	assert.Equal(t, ev.EventID, gotA.EventID)
	assert.Equal(t, ev.EventID, gotB.EventID)
}

func TestNotifierFullBufferDropsInsteadOfBlocking(t *testing.T) {
	t.Parallel()

	n := New()
	defer n.Close() //nolint:errcheck

	ch, cancel := n.Subscribe(1)
	defer cancel()

	n.Publish(model.NewChangeEvent(model.CollectionOrders, 1, model.ActionCreated))
	// Buffer is full; this must return without blocking.
	n.Publish(model.NewChangeEvent(model.CollectionOrders, 2, model.ActionCreated))

	got := <-ch
	assert.Equal(t, int64(1), got.EntityID)

	select {
	case ev, ok := <-ch:
		require.True(t, ok)
		// The dropped event never arrives; only later publishes do.
		assert.NotEqual(t, int64(2), ev.EntityID)
	default:
	}
}

func TestNotifierCancelStopsDelivery(t *testing.T) {
	t.Parallel()

	n := New()
	defer n.Close() //nolint:errcheck

	ch, cancel := n.Subscribe(1)
	cancel()
	cancel() // safe to call twice

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after cancellation must not panic on the closed channel.
	n.Publish(model.NewChangeEvent(model.CollectionClients, 1, model.ActionDeleted))
}

func TestNotifierCloseTerminatesSubscribers(t *testing.T) {
	t.Parallel()

	n := New()
	ch, cancel := n.Subscribe(1)
	defer cancel()

	require.NoError(t, n.Close())

	_, ok := <-ch
	assert.False(t, ok)

	// Subscribe after close yields a closed channel.
	late, lateCancel := n.Subscribe(1)
	defer lateCancel()
	_, ok = <-late
	assert.False(t, ok)
}
