package model

// Well-known component types. The column is an open string: new kinds need no
// schema or code change, only their own specification entries.
const (
	ComponentTypeResistor  = "RESISTOR"
	ComponentTypeCapacitor = "CAPACITOR"
	ComponentTypeDiode     = "DIODE"
)

type Component struct {
	ID           int64
	Name         string
	Manufacturer string
	Price        float64
	Type         string
	// Units currently on the shelf. Every change goes through stock
	// accounting and leaves a Movement behind.
	StockQuantity int64
}

// ComponentSpecification is one key/value attribute of a component
// (resistance, tolerance, capacitance, ...). The attribute set is open.
type ComponentSpecification struct {
	ID          int64
	ComponentID int64
	Name        string
	Value       string
}

type CreateComponentParams struct {
	Name           string
	Manufacturer   string
	Price          float64
	Type           string
	StockQuantity  int64
	Specifications []SpecificationParams
}

type UpdateComponentParams struct {
	ID           int64
	Name         string
	Manufacturer string
	Price        float64
	Type         string
	// Replaces the whole specification bag.
	Specifications []SpecificationParams
}

type SpecificationParams struct {
	Name  string
	Value string
}
