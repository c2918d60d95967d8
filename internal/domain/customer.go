package domain

// CustomerRow is one guest registry entry as shown in the customer list.
type CustomerRow struct {
	ID          string
	FullName    string
	Nationality string
	Gender      string
	IDType      string
	IDNumber    string
}

// CustomerQuery filters the customer list. MissingRegistration keeps only
// guests without an ID number or ID type.
type CustomerQuery struct {
	Search              string
	MissingRegistration bool
	Page                PageRequest
}
