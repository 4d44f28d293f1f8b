package model

type Employee struct {
	ID           int64
	FullName     string
	Address      string
	Phone        string
	Email        string
	Position     string
	Salary       float64
	Login        string
	PasswordHash string
	Salt         string
}

// Credentials is what the authentication collaborator needs to verify a
// password: the stored salt and the salted hash.
type Credentials struct {
	EmployeeID   int64
	Salt         string
	PasswordHash string
}
