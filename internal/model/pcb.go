package model

import "time"

type Pcb struct {
	ID           int64
	Name         string
	SerialNumber string
	Batch        string
	Description  *string
	Price        float64
	// Boards physically on the shelf.
	TotalStock int64
	// Boards reserved by open orders. Reservation changes never produce
	// Movement rows; only TotalStock changes do.
	OrderedQuantity   int64
	ManufacturingDate time.Time
	Length            float64
	Width             float64
	LayerCount        int64
	Comment           *string
	ImageRef          *string
}

// BomLine ties a component to a PCB: how many units one board needs and where
// they are placed. Keyed by (PcbID, ComponentID).
type BomLine struct {
	PcbID          int64
	ComponentID    int64
	ComponentCount int64
	Coordinates    *string
}

// BomLineInfo is a BomLine joined with its component for list screens.
type BomLineInfo struct {
	BomLine
	ComponentName string
	ComponentType string
	UnitPrice     float64
}

type CreatePcbParams struct {
	Name              string
	SerialNumber      string
	Batch             string
	Description       *string
	Price             float64
	TotalStock        int64
	ManufacturingDate time.Time
	Length            float64
	Width             float64
	LayerCount        int64
	Comment           *string
	ImageRef          *string
}

// UpdatePcbParams carries the full editable state of a board. A TotalStock
// different from the stored one triggers BOM reconciliation.
type UpdatePcbParams struct {
	ID                int64
	Name              string
	SerialNumber      string
	Batch             string
	Description       *string
	Price             float64
	TotalStock        int64
	ManufacturingDate time.Time
	Length            float64
	Width             float64
	LayerCount        int64
	Comment           *string
	ImageRef          *string
}

type AssignComponentParams struct {
	PcbID          int64
	ComponentID    int64
	ComponentCount int64
	Coordinates    *string
}
