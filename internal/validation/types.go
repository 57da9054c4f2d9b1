package validation

import (
	"rhystmorgan/regform/internal/models"
)

// Flag names a validity failure reason
type Flag string

const (
	FlagValueMissing    Flag = "valueMissing"
	FlagTypeMismatch    Flag = "typeMismatch"
	FlagPatternMismatch Flag = "patternMismatch"
	FlagTooShort        Flag = "tooShort"
	FlagCustomError     Flag = "customError"
)

// Priority is the order in which flags are surfaced; only the first active
// one is reported.
var Priority = []Flag{
	FlagValueMissing,
	FlagTypeMismatch,
	FlagPatternMismatch,
	FlagTooShort,
	FlagCustomError,
}

func (f Flag) bit() uint8 {
	for i, p := range Priority {
		if p == f {
			return 1 << i
		}
	}
	return 0
}

// ValidityOutcome is the set of failure flags of a field at one point in
// time. The zero value is a valid outcome.
type ValidityOutcome struct {
	flags        uint8
	CustomReason string
}

// NewOutcome builds an outcome with the given flags set
func NewOutcome(flags ...Flag) ValidityOutcome {
	var o ValidityOutcome
	for _, f := range flags {
		o.flags |= f.bit()
	}
	return o
}

func (o ValidityOutcome) with(f Flag) ValidityOutcome {
	o.flags |= f.bit()
	return o
}

// Has reports whether the flag is set
func (o ValidityOutcome) Has(f Flag) bool {
	b := f.bit()
	return b != 0 && o.flags&b != 0
}

// Valid reports whether no flag is set
func (o ValidityOutcome) Valid() bool {
	return o.flags == 0
}

// First returns the highest-priority flag that is set
func (o ValidityOutcome) First() (Flag, bool) {
	for _, f := range Priority {
		if o.Has(f) {
			return f, true
		}
	}
	return "", false
}

// Flags returns every set flag in priority order
func (o ValidityOutcome) Flags() []Flag {
	var flags []Flag
	for _, f := range Priority {
		if o.Has(f) {
			flags = append(flags, f)
		}
	}
	return flags
}

// Result is what verifying one field produces: the value after formatting,
// its outcome and the message to show (empty when valid).
type Result struct {
	Field   models.FieldName
	Value   string
	Outcome ValidityOutcome
	Message string
}

// Valid reports whether the verified field is valid
func (r Result) Valid() bool {
	return r.Outcome.Valid()
}
