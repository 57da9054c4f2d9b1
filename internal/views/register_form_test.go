package views

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/regform/internal/address"
	"rhystmorgan/regform/internal/models"
	"rhystmorgan/regform/internal/storage"
	"rhystmorgan/regform/internal/validation"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.Local)
}

type stubFetcher struct {
	addr *address.Address
	err  error
}

func (s stubFetcher) Fetch(context.Context, string) (*address.Address, error) {
	return s.addr, s.err
}

var se = &address.Address{
	District:   "Sé",
	City:       "São Paulo",
	Street:     "Praça da Sé",
	Complement: "lado ímpar",
	State:      "SP",
}

func newTestForm(t *testing.T, fetcher address.Fetcher) (*RegisterFormModel, *storage.Storage) {
	t.Helper()
	store, err := storage.NewStorage(t.TempDir())
	require.NoError(t, err)

	verifier := validation.NewVerifier(validation.DefaultCatalog(), validation.WithClock(fixedClock{}))
	return NewRegisterFormModel(verifier, address.NewLookup(fetcher, nil), store, nil), store
}

func focusOn(t *testing.T, m *RegisterFormModel, name models.FieldName) {
	t.Helper()
	for i, n := range m.order {
		if n == name {
			for _, input := range m.inputs {
				input.Blur()
			}
			m.focus = i
			if input, ok := m.inputs[name]; ok {
				input.Focus()
			}
			return
		}
	}
	t.Fatalf("no field %s", name)
}

func typeText(m *RegisterFormModel, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func setValue(m *RegisterFormModel, name models.FieldName, value string) {
	m.form.SetValue(name, value)
	m.syncInput(name)
}

func fillValid(m *RegisterFormModel) {
	setValue(m, models.FieldFullName, "Maria da Silva")
	setValue(m, models.FieldNationalID, "52998224725")
	setValue(m, models.FieldBirth, "1990-05-17")
	setValue(m, models.FieldContact, "11987654321")
	setValue(m, models.FieldEmail, "maria@exemplo.com")
	setValue(m, models.FieldPostcode, "01001-000")
	setValue(m, models.FieldStreet, "Praça da Sé")
	setValue(m, models.FieldNumber, "100")
	setValue(m, models.FieldComplement, "lado ímpar")
	setValue(m, models.FieldDistrict, "Sé")
	setValue(m, models.FieldCity, "São Paulo")
	setValue(m, models.FieldState, "SP")
	setValue(m, models.FieldTerms, models.CheckboxOn)
}

// collect runs cmd and any batched commands it yields
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func findLookupMsg(t *testing.T, msgs []tea.Msg) AddressLookupMsg {
	t.Helper()
	for _, msg := range msgs {
		if res, ok := msg.(AddressLookupMsg); ok {
			return res
		}
	}
	t.Fatal("no AddressLookupMsg produced")
	return AddressLookupMsg{}
}

func TestTypingFormatsNationalIDAndPhone(t *testing.T) {
	m, _ := newTestForm(t, stubFetcher{addr: se})

	focusOn(t, m, models.FieldNationalID)
	typeText(m, "52998224725")
	assert.Equal(t, "529.982.247-25", m.form.Value(models.FieldNationalID))
	assert.Equal(t, "529.982.247-25", m.inputs[models.FieldNationalID].Value())

	focusOn(t, m, models.FieldContact)
	typeText(m, "11987654321")
	assert.Equal(t, "(11) 98765-4321", m.form.Value(models.FieldContact))
}

func TestBlurShowsCatalogMessage(t *testing.T) {
	m, _ := newTestForm(t, stubFetcher{addr: se})

	focusOn(t, m, models.FieldNationalID)
	typeText(m, "11111111111")
	assert.Nil(t, m.blur(models.FieldNationalID))

	f, _ := m.form.Field(models.FieldNationalID)
	assert.Equal(t, "O CPF digitado não existe.", f.Message)
	assert.Contains(t, m.View(), "O CPF digitado não existe.")

	m.blur(models.FieldFullName)
	f, _ = m.form.Field(models.FieldFullName)
	assert.Equal(t, "O campo do nome não pode estar vazio.", f.Message)
}

func TestPostcodeBlurFillsAddress(t *testing.T) {
	m, _ := newTestForm(t, stubFetcher{addr: se})

	setValue(m, models.FieldPostcode, "01001-000")
	cmd := m.blur(models.FieldPostcode)
	require.NotNil(t, cmd)
	assert.True(t, m.lookupPending)

	m.Update(findLookupMsg(t, collect(cmd)))

	assert.False(t, m.lookupPending)
	assert.Equal(t, "Sé", m.inputs[models.FieldDistrict].Value())
	assert.Equal(t, "São Paulo", m.inputs[models.FieldCity].Value())
	assert.Equal(t, "Praça da Sé", m.inputs[models.FieldStreet].Value())
	assert.Equal(t, "lado ímpar", m.inputs[models.FieldComplement].Value())
	assert.Equal(t, "SP", m.inputs[models.FieldState].Value())
	assert.True(t, m.form.SubmitEnabled)
}

func TestPostcodeFailureClearsAddress(t *testing.T) {
	m, _ := newTestForm(t, stubFetcher{err: address.NewNotFoundError("99999999")})
	fillValid(m)

	setValue(m, models.FieldPostcode, "99999-999")
	cmd := m.blur(models.FieldPostcode)
	m.Update(findLookupMsg(t, collect(cmd)))

	for _, name := range address.DependentFields {
		assert.Empty(t, m.inputs[name].Value(), name)
	}
	assert.False(t, m.form.SubmitEnabled)
	assert.Contains(t, m.View(), address.InvalidPostcodeMessage)
}

func TestEmptyPostcodeStartsNoLookup(t *testing.T) {
	m, _ := newTestForm(t, stubFetcher{err: errors.New("must not be called")})

	assert.Nil(t, m.blur(models.FieldPostcode))
	assert.False(t, m.lookupPending)
}

func TestSpaceTogglesTerms(t *testing.T) {
	m, _ := newTestForm(t, stubFetcher{addr: se})
	focusOn(t, m, models.FieldTerms)

	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	m.Update(space)
	assert.Equal(t, models.CheckboxOn, m.form.Value(models.FieldTerms))
	assert.Contains(t, m.View(), "[x]")

	m.Update(space)
	assert.Empty(t, m.form.Value(models.FieldTerms))
	f, _ := m.form.Field(models.FieldTerms)
	assert.Equal(t, "Você deve aceitar os termos de uso para se cadastrar.", f.Message)
}

func TestSubmitValidFormSavesRecord(t *testing.T) {
	m, store := newTestForm(t, stubFetcher{addr: se})
	fillValid(m)

	cmd := m.submit()
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)
	assert.Nil(t, m.submit(), "a second submit while saving is ignored")

	saved, ok := cmd().(RegistrationSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.NotEmpty(t, saved.ID)

	loaded, err := store.LoadRegistration()
	require.NoError(t, err)
	assert.Equal(t, saved.Record, *loaded)
	assert.Equal(t, "529.982.247-25", loaded.CPF)
	assert.Equal(t, "(11) 98765-4321", loaded.Contact)

	_, next := m.Update(saved)
	require.NotNil(t, next)
	assert.Equal(t, NavigateMsg{State: ViewSubmitted}, next())
	assert.False(t, m.submitting)
}

func TestSubmitInvalidFormDoesNotSave(t *testing.T) {
	m, store := newTestForm(t, stubFetcher{addr: se})
	setValue(m, models.FieldFullName, "Maria da Silva")

	m.submit()

	require.NotNil(t, m.feedbackMessage)
	assert.Equal(t, msgFixFields, m.feedbackMessage.Message)
	assert.False(t, m.submitting)

	f, _ := m.form.Field(models.FieldEmail)
	assert.Equal(t, "O campo de e-mail não pode estar vazio.", f.Message)

	_, err := store.LoadRegistration()
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSubmitBlockedWhileSubmitDisabled(t *testing.T) {
	m, store := newTestForm(t, stubFetcher{addr: se})
	fillValid(m)
	m.form.SubmitEnabled = false
	m.form.LookupError = address.InvalidPostcodeMessage

	m.submit()

	require.NotNil(t, m.feedbackMessage)
	assert.Equal(t, address.InvalidPostcodeMessage, m.feedbackMessage.Message)
	_, err := store.LoadRegistration()
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveFailureShowsFeedback(t *testing.T) {
	m, _ := newTestForm(t, stubFetcher{addr: se})
	m.submitting = true

	m.Update(RegistrationSavedMsg{Err: errors.New("disk full")})

	assert.False(t, m.submitting)
	require.NotNil(t, m.feedbackMessage)
	assert.Equal(t, msgSaveFailed, m.feedbackMessage.Message)
}

func TestFocusWraps(t *testing.T) {
	m, _ := newTestForm(t, stubFetcher{addr: se})

	m.moveFocus(-1)
	assert.True(t, m.onSubmitButton())

	m.moveFocus(1)
	assert.Equal(t, models.FieldFullName, m.focusedName())
}
