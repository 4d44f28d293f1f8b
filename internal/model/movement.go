package model

import "time"

type (
	MovementType string
	ProductType  string
)

const (
	MovementInbound  MovementType = "INBOUND"
	MovementOutbound MovementType = "OUTBOUND"
)

const (
	ProductComponent ProductType = "COMPONENT"
	ProductPcb       ProductType = "PCB"
)

// Movement is one append-only row of the stock audit trail. Rows are never
// updated or deleted.
type Movement struct {
	ID          int64
	Type        MovementType
	ProductType ProductType
	Description string
	// Unsigned magnitude of the stock change; the sign lives in Type.
	Value      int64
	OccurredAt time.Time
}
