package user

import (
	"time"

	"github.com/janisto/huma-users/internal/platform/timeutil"
)

// CheckAgeEligibility fails with an *AgeError when birthDate falls after the
// date exactly minimumAge calendar years before today.
func CheckAgeEligibility(birthDate time.Time, minimumAge int, today time.Time) error {
	cutoff := timeutil.SubtractYears(today, minimumAge)
	if timeutil.DateOf(birthDate).After(cutoff) {
		return &AgeError{MinimumAge: minimumAge}
	}
	return nil
}

// CheckDateRangeOrder fails with ErrInvalidDateRange when from is after to.
// Equal dates form a valid single-day range.
func CheckDateRangeOrder(from, to time.Time) error {
	if timeutil.DateOf(from).After(timeutil.DateOf(to)) {
		return ErrInvalidDateRange
	}
	return nil
}
