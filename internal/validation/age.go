package validation

import (
	"errors"
	"time"
)

const (
	DefaultMinimumAge = 18
	BirthDateLayout   = "2006-01-02"
)

var (
	ErrUnderage     = errors.New("below minimum age")
	ErrInvalidBirth = errors.New("invalid birth date")
)

// Clock provides the current time; tests inject a fixed one
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// AgeValidator checks a birth date against a minimum age using calendar
// arithmetic: the birthday in year+MinimumAge must not be after today.
type AgeValidator struct {
	MinimumAge int
	Clock      Clock
}

func NewAgeValidator(clock Clock) *AgeValidator {
	if clock == nil {
		clock = RealClock{}
	}
	return &AgeValidator{
		MinimumAge: DefaultMinimumAge,
		Clock:      clock,
	}
}

// Check validates a YYYY-MM-DD birth date. An unparseable date never
// satisfies the minimum age.
func (v *AgeValidator) Check(value string) error {
	birth, err := time.Parse(BirthDateLayout, value)
	if err != nil {
		return errors.Join(ErrUnderage, ErrInvalidBirth)
	}

	if !v.IsOldEnough(birth) {
		return ErrUnderage
	}
	return nil
}

// IsOldEnough compares dates only; Feb 29 birthdays roll over to Mar 1 in
// non-leap target years.
func (v *AgeValidator) IsOldEnough(birth time.Time) bool {
	threshold := time.Date(birth.Year()+v.MinimumAge, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)

	now := v.Clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return !today.Before(threshold)
}
