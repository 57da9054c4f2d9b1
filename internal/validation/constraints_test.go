package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rhystmorgan/regform/internal/models"
)

func TestEvaluate(t *testing.T) {
	name := models.Constraints{
		Required:  true,
		Type:      models.InputText,
		Pattern:   models.MustPattern(`[a-z]+`),
		MinLength: 3,
	}
	email := models.Constraints{Required: true, Type: models.InputEmail, MinLength: 10}
	number := models.Constraints{Required: true, Type: models.InputNumber}
	optional := models.Constraints{Type: models.InputText, MinLength: 3}

	tests := []struct {
		name        string
		value       string
		constraints models.Constraints
		custom      string
		expected    []Flag
	}{
		{"empty required", "", name, "", []Flag{FlagValueMissing}},
		{"valid text", "abcd", name, "", nil},
		{"pattern and length", "A1", name, "", []Flag{FlagPatternMismatch, FlagTooShort}},
		{"too short only", "ab", name, "", []Flag{FlagTooShort}},
		{"custom only", "abcd", name, "nope", []Flag{FlagCustomError}},
		{"empty with custom", "", name, "nope", []Flag{FlagValueMissing, FlagCustomError}},
		{"bad email", "not-an-email", email, "", []Flag{FlagTypeMismatch}},
		{"short email", "ab@ex.com", email, "", []Flag{FlagTooShort}},
		{"good email", "maria@exemplo.com", email, "", nil},
		{"dotless domain", "maria@exemplo", email, "", nil},
		{"two at signs", "maria@@exemplo.com", email, "", []Flag{FlagTypeMismatch}},
		{"space in local part", "ma ria@exemplo.com", email, "", []Flag{FlagTypeMismatch}},
		{"numeric", "123", number, "", nil},
		{"non numeric", "12a", number, "", []Flag{FlagTypeMismatch}},
		{"optional empty", "", optional, "", nil},
		{"optional short", "ab", optional, "", []Flag{FlagTooShort}},
		{"length counts runes", "ção", optional, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Evaluate(tt.value, tt.constraints, tt.custom)
			assert.Equal(t, tt.expected, outcome.Flags())
			assert.Equal(t, len(tt.expected) == 0, outcome.Valid())
			assert.Equal(t, tt.custom, outcome.CustomReason)
		})
	}
}

func TestEvaluateEmailAcceptsBrowserShapes(t *testing.T) {
	email := models.Constraints{Type: models.InputEmail}

	assert.True(t, Evaluate("a@b", email, "").Valid())
	assert.True(t, Evaluate("first.last+tag@sub.exemplo.com.br", email, "").Valid())
	assert.True(t, Evaluate("a@b-", email, "").Has(FlagTypeMismatch))
	assert.True(t, Evaluate("@exemplo.com", email, "").Has(FlagTypeMismatch))
}

func TestEvaluateCheckbox(t *testing.T) {
	terms := models.Constraints{Required: true, Type: models.InputCheckbox}

	assert.True(t, Evaluate("", terms, "").Has(FlagValueMissing))
	assert.True(t, Evaluate(models.CheckboxOn, terms, "").Valid())
}

func TestOutcomeFirstFollowsPriority(t *testing.T) {
	o := NewOutcome(FlagCustomError, FlagTooShort, FlagTypeMismatch)
	first, ok := o.First()
	assert.True(t, ok)
	assert.Equal(t, FlagTypeMismatch, first)

	_, ok = ValidityOutcome{}.First()
	assert.False(t, ok)
	assert.True(t, ValidityOutcome{}.Valid())
	assert.False(t, o.Has(Flag("bogus")))
}
