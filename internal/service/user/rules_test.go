package user

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckAgeEligibility(t *testing.T) {
	today := date(2024, time.June, 15)
	tests := []struct {
		name      string
		birthDate time.Time
		wantErr   bool
	}{
		{"exactly eighteen today", date(2006, time.June, 15), false},
		{"one day short", date(2006, time.June, 16), true},
		{"well over", date(1990, time.January, 1), false},
		{"ten years old", date(2014, time.June, 15), true},
		{"born today", today, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAgeEligibility(tt.birthDate, 18, today)
			if tt.wantErr {
				if !errors.Is(err, ErrBelowMinimumAge) {
					t.Fatalf("expected ErrBelowMinimumAge, got %v", err)
				}
				if err.Error() != "User must be at least 18 years old." {
					t.Fatalf("unexpected message %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckAgeEligibilityLeapDayToday(t *testing.T) {
	today := date(2024, time.February, 29)

	if err := CheckAgeEligibility(date(2006, time.February, 28), 18, today); err != nil {
		t.Fatalf("expected Feb 28 birth date to pass on a leap day, got %v", err)
	}
	if err := CheckAgeEligibility(date(2006, time.March, 1), 18, today); err == nil {
		t.Fatal("expected Mar 1 birth date to fail on a leap day")
	}
}

func TestCheckAgeEligibilityZeroMinimum(t *testing.T) {
	today := date(2024, time.June, 15)
	if err := CheckAgeEligibility(today, 0, today); err != nil {
		t.Fatalf("expected any past-or-today date to pass with minimum 0, got %v", err)
	}
}

func TestCheckDateRangeOrder(t *testing.T) {
	from := date(1990, time.January, 1)
	to := date(2000, time.December, 31)

	if err := CheckDateRangeOrder(from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckDateRangeOrder(from, from); err != nil {
		t.Fatalf("expected equal dates to be valid, got %v", err)
	}
	err := CheckDateRangeOrder(to, from)
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	if err.Error() != "'From' date must be less than 'To' date" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
