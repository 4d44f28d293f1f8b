package model

import (
	"time"

	"github.com/google/uuid"
)

type (
	Collection  string
	EventAction string
)

const (
	CollectionComponents Collection = "components"
	CollectionPcbs       Collection = "pcbs"
	CollectionBomLines   Collection = "bom_lines"
	CollectionClients    Collection = "clients"
	CollectionOrders     Collection = "orders"
	CollectionOrderItems Collection = "order_items"
	CollectionMovements  Collection = "movements"
)

const (
	ActionCreated EventAction = "created"
	ActionUpdated EventAction = "updated"
	ActionDeleted EventAction = "deleted"
)

// ChangeEvent tells a subscriber that a collection changed and which entity
// was touched. It carries no payload; subscribers re-query what they show.
type ChangeEvent struct {
	EventID    uuid.UUID
	Collection Collection
	EntityID   int64
	Action     EventAction
	OccurredAt time.Time
}

func NewChangeEvent(c Collection, entityID int64, action EventAction) ChangeEvent {
	return ChangeEvent{
		EventID:    uuid.New(),
		Collection: c,
		EntityID:   entityID,
		Action:     action,
		OccurredAt: time.Now(),
	}
}
