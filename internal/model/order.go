package model

import "time"

type OrderStatus string

const (
	StatusPaid    OrderStatus = "PAID"
	StatusReady   OrderStatus = "READY"
	StatusShipped OrderStatus = "SHIPPED"
)

// IsTerminal reports whether the status freezes the order's cart. Item
// mutations on a terminal order are rejected.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusReady || s == StatusShipped
}

type Order struct {
	ID               int64
	ClientID         int64
	RegistrationDate time.Time
	Status           OrderStatus
	// Cached Σ item.Quantity*item.PricePerPcb; recomputed in full after
	// every item mutation.
	TotalAmount     float64
	ShippingDate    *time.Time
	ShippingCompany *string
	// Set when the terminal-status stock deduction has run, so a
	// READY -> SHIPPED transition cannot deduct twice.
	StockDeducted bool
}

type OrderItem struct {
	ID      int64
	OrderID int64
	PcbID   int64
	Quantity int64
	// Board price snapshotted when the line was written.
	PricePerPcb float64
}

// OrderItemInfo is an OrderItem joined with its board name for list screens.
type OrderItemInfo struct {
	OrderItem
	PcbName string
}

type CreateOrderParams struct {
	ClientID        int64
	Status          OrderStatus
	ShippingDate    *time.Time
	ShippingCompany *string
}

type UpdateOrderParams struct {
	ID              int64
	ClientID        int64
	Status          OrderStatus
	ShippingDate    *time.Time
	ShippingCompany *string
}

// AddOrUpdateItemParams describes one cart mutation. A nil ItemID means "add":
// either a new line or an increment of the existing line for the same board.
// A non-nil ItemID replaces that line, possibly moving it to another board.
type AddOrUpdateItemParams struct {
	OrderID  int64
	PcbID    int64
	Quantity int64
	ItemID   *int64
}
