// Package user holds the user record domain: the record type, its validation
// and business rules, the update merger, the store backends and the service
// that orchestrates them.
package user

import "time"

// Record is a stored user.
type Record struct {
	ID          int64
	Email       string
	FirstName   string
	LastName    string
	BirthDate   time.Time // UTC midnight
	Address     string
	PhoneNumber string
}

// Patch carries the fields of a partial update. A nil field is left untouched.
type Patch struct {
	Email       *string
	FirstName   *string
	LastName    *string
	BirthDate   *time.Time
	Address     *string
	PhoneNumber *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Email == nil &&
		p.FirstName == nil &&
		p.LastName == nil &&
		p.BirthDate == nil &&
		p.Address == nil &&
		p.PhoneNumber == nil
}
