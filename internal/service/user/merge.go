package user

import "github.com/janisto/huma-users/internal/platform/timeutil"

// ApplyFull returns existing with every mutable field taken from replacement.
// Empty optional values in replacement clear the stored ones.
func ApplyFull(existing, replacement Record) Record {
	existing.Email = replacement.Email
	existing.FirstName = replacement.FirstName
	existing.LastName = replacement.LastName
	existing.BirthDate = timeutil.DateOf(replacement.BirthDate)
	existing.Address = replacement.Address
	existing.PhoneNumber = replacement.PhoneNumber
	return existing
}

// ApplyPartial returns existing with the non-nil fields of p applied.
func ApplyPartial(existing Record, p Patch) Record {
	if p.Email != nil {
		existing.Email = *p.Email
	}
	if p.FirstName != nil {
		existing.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		existing.LastName = *p.LastName
	}
	if p.BirthDate != nil {
		existing.BirthDate = timeutil.DateOf(*p.BirthDate)
	}
	if p.Address != nil {
		existing.Address = *p.Address
	}
	if p.PhoneNumber != nil {
		existing.PhoneNumber = *p.PhoneNumber
	}
	return existing
}
