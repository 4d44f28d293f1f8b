package model

type ClientType string

const (
	ClientPhysical ClientType = "PHYSICAL"
	ClientLegal    ClientType = "LEGAL"
)

// Client owns exactly one detail record matching its type: a PhysicalPerson
// for PHYSICAL, a LegalEntity for LEGAL.
type Client struct {
	ID    int64
	Type  ClientType
	Phone string
	Email string
}

type PhysicalPerson struct {
	ClientID int64
	FullName string
	Address  string
	Age      int64
}

type LegalEntity struct {
	ClientID      int64
	Name          string
	INN           string
	ContactPerson string
	LegalAddress  string
	ActualAddress string
}

// ClientInfo pairs the client row with whichever detail record its type owns.
type ClientInfo struct {
	Client
	Person *PhysicalPerson
	Entity *LegalEntity
}

// DisplayName picks the human name out of the detail record.
func (ci ClientInfo) DisplayName() string {
	switch {
	case ci.Person != nil:
		return ci.Person.FullName
	case ci.Entity != nil:
		return ci.Entity.Name
	default:
		return ""
	}
}

type SaveClientParams struct {
	Type   ClientType
	Phone  string
	Email  string
	Person *PhysicalPerson
	Entity *LegalEntity
}
