package validation

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"rhystmorgan/regform/internal/models"
	"rhystmorgan/regform/internal/utils"
)

// Verifier runs the per-field verification pipeline
type Verifier struct {
	catalog *Catalog
	age     *AgeValidator
	logger  *zap.Logger
}

type VerifierOption func(*Verifier)

func WithClock(clock Clock) VerifierOption {
	return func(v *Verifier) {
		v.age = NewAgeValidator(clock)
	}
}

func WithLogger(logger *zap.Logger) VerifierOption {
	return func(v *Verifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewVerifier creates a verifier backed by the given catalog
func NewVerifier(catalog *Catalog, opts ...VerifierOption) *Verifier {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	v := &Verifier{
		catalog: catalog,
		age:     NewAgeValidator(RealClock{}),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CustomFields lists the fields the pipeline may set an override on
func (v *Verifier) CustomFields() []models.FieldName {
	return []models.FieldName{models.FieldNationalID, models.FieldBirth}
}

// Catalog returns the message catalog in use
func (v *Verifier) Catalog() *Catalog {
	return v.catalog
}

// Check verifies a field without touching it. Steps run in order:
//  1. the previous custom override is dropped
//  2. a CPF with at least 11 characters is formatted, then checksum-validated
//  3. a non-empty birth date is checked against the minimum age
//  4. the contact phone is formatted
//  5. the outcome is evaluated against the constraints and the new override
//  6. the first failing flag selects the message
//
// Formatting happens even when validation fails, and overrides are set
// before the outcome is evaluated.
func (v *Verifier) Check(field models.Field) Result {
	value := field.Value
	custom := ""

	switch field.Name {
	case models.FieldNationalID:
		if utf8.RuneCountInString(value) >= nationalIDLength {
			value = utils.FormatNationalID(value)
			if err := ValidateNationalID(value); err != nil {
				custom = ReasonNationalIDUnknown
			}
		}
	case models.FieldBirth:
		if value != "" {
			if err := v.age.Check(value); err != nil {
				custom = ReasonUnderage
			}
		}
	case models.FieldContact:
		value = utils.FormatPhone(value)
	}

	outcome := Evaluate(value, field.Constraints, custom)

	result := Result{
		Field:   field.Name,
		Value:   value,
		Outcome: outcome,
	}

	if !outcome.Valid() {
		msg, ok := v.catalog.Message(field.Name, outcome)
		if !ok {
			flag, _ := outcome.First()
			v.logger.Debug("no catalog message",
				zap.String("field", string(field.Name)),
				zap.String("flag", string(flag)))
		}
		result.Message = msg
	}

	return result
}

// Verify checks the named field and writes the result back into the form:
// the formatted value, the custom override and the error slot.
func (v *Verifier) Verify(state *models.FormState, name models.FieldName) Result {
	field, ok := state.Field(name)
	if !ok {
		return Result{Field: name}
	}

	field.CustomError = ""
	result := v.Check(*field)

	field.Value = result.Value
	field.CustomError = result.Outcome.CustomReason
	field.Message = result.Message

	return result
}

// VerifyAll verifies every required field and reports whether all are valid
func (v *Verifier) VerifyAll(state *models.FormState) bool {
	valid := true
	for _, f := range state.Required() {
		if res := v.Verify(state, f.Name); !res.Valid() {
			valid = false
		}
	}
	return valid
}
