package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/regform/internal/models"
)

func TestDefaultCatalogCoversRegistrationForm(t *testing.T) {
	catalog := DefaultCatalog()
	verifier := NewVerifier(catalog)

	assert.NoError(t, catalog.Validate(models.NewRegistrationForm(), verifier.CustomFields()...))
}

func TestCatalogValidateReportsMissingMessages(t *testing.T) {
	catalog := NewCatalog(map[models.FieldName]map[Flag]string{
		models.FieldEmail: {FlagValueMissing: "obrigatório"},
	})
	form := models.NewFormState(models.Field{
		Name:        models.FieldEmail,
		Constraints: models.Constraints{Required: true, Type: models.InputEmail, MinLength: 6},
	})

	err := catalog.Validate(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email/typeMismatch")
	assert.Contains(t, err.Error(), "email/tooShort")
	assert.NotContains(t, err.Error(), "email/valueMissing")
}

func TestCatalogMessageUsesPriority(t *testing.T) {
	catalog := DefaultCatalog()

	msg, ok := catalog.Message(models.FieldNationalID, NewOutcome(FlagTooShort, FlagPatternMismatch))
	require.True(t, ok)
	assert.Equal(t, "Por favor, preencha um CPF válido.", msg)

	msg, ok = catalog.Message(models.FieldNationalID, NewOutcome(FlagCustomError, FlagValueMissing))
	require.True(t, ok)
	assert.Equal(t, "O campo de CPF não pode estar vazio.", msg)

	msg, ok = catalog.Message(models.FieldNationalID, ValidityOutcome{})
	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestCatalogUnreachableCombination(t *testing.T) {
	msg, ok := DefaultCatalog().Lookup(models.FieldCity, FlagCustomError)
	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestNewCatalogCopiesInput(t *testing.T) {
	input := map[models.FieldName]map[Flag]string{
		models.FieldCity: {FlagValueMissing: "original"},
	}
	catalog := NewCatalog(input)
	input[models.FieldCity][FlagValueMissing] = "changed"

	msg, _ := catalog.Lookup(models.FieldCity, FlagValueMissing)
	assert.Equal(t, "original", msg)
}
