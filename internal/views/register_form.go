package views

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rhystmorgan/regform/internal/address"
	"rhystmorgan/regform/internal/models"
	"rhystmorgan/regform/internal/storage"
	"rhystmorgan/regform/internal/utils"
	"rhystmorgan/regform/internal/validation"
)

const (
	msgFixFields     = "Corrija os campos destacados antes de enviar."
	msgWaitLookup    = "Aguarde a consulta do CEP."
	msgSaveFailed    = "Não foi possível salvar o cadastro. Tente novamente."
	msgLookupPending = "Consultando CEP..."
)

var charLimits = map[models.FieldName]int{
	models.FieldNationalID: 14,
	models.FieldContact:    15,
	models.FieldPostcode:   9,
	models.FieldBirth:      10,
	models.FieldState:      2,
}

type RegisterFormModel struct {
	// Data
	form     *models.FormState
	verifier *validation.Verifier
	lookup   *address.Lookup
	storage  *storage.Storage
	logger   *zap.Logger

	// Inputs, one per text field, in form order. focus == len(order)
	// selects the submit button.
	order  []models.FieldName
	inputs map[models.FieldName]*textinput.Model
	focus  int

	// Async state
	spinner       spinner.Model
	lookupPending bool
	submitting    bool

	// UI state
	width           int
	height          int
	feedbackMessage *FeedbackMessage
}

type AddressLookupMsg struct {
	Result address.Result
}

type RegistrationSavedMsg struct {
	ID     string
	Record models.RegistrationRecord
	Err    error
}

func NewRegisterFormModel(
	verifier *validation.Verifier,
	lookup *address.Lookup,
	store *storage.Storage,
	logger *zap.Logger,
) *RegisterFormModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	form := models.NewRegistrationForm()

	m := &RegisterFormModel{
		form:     form,
		verifier: verifier,
		lookup:   lookup,
		storage:  store,
		logger:   logger.Named("register"),
		order:    form.Names(),
		inputs:   make(map[models.FieldName]*textinput.Model),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Sapphire))),
		),
	}

	for _, f := range form.Fields() {
		if f.IsCheckbox() {
			continue
		}
		m.inputs[f.Name] = newFieldInput(f)
	}

	if input, ok := m.inputs[m.focusedName()]; ok {
		input.Focus()
	}

	return m
}

func newFieldInput(f *models.Field) *textinput.Model {
	input := textinput.New()
	input.Placeholder = f.Placeholder
	input.CharLimit = 100
	if limit, ok := charLimits[f.Name]; ok {
		input.CharLimit = limit
	}
	input.Width = 40
	input.Prompt = "› "
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
	return &input
}

func (m *RegisterFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Form exposes the underlying form state
func (m *RegisterFormModel) Form() *models.FormState {
	return m.form
}

func (m *RegisterFormModel) Update(msg tea.Msg) (*RegisterFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m, m.moveFocus(1)

		case "shift+tab", "up":
			return m, m.moveFocus(-1)

		case "enter":
			if m.onSubmitButton() {
				return m, m.submit()
			}
			return m, m.moveFocus(1)

		case "ctrl+s":
			return m, m.submit()

		case " ":
			if m.focusedName() == models.FieldTerms {
				m.toggleTerms()
				return m, nil
			}
		}

		return m, m.updateInput(msg)

	case AddressLookupMsg:
		m.applyLookup(msg.Result)
		return m, nil

	case spinner.TickMsg:
		if !m.lookupPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RegistrationSavedMsg:
		m.submitting = false
		if msg.Err != nil {
			fb, cmd := newFeedback(FeedbackError, msgSaveFailed, 5*time.Second)
			m.feedbackMessage = fb
			return m, cmd
		}
		return m, NavigateTo(ViewSubmitted)

	case FeedbackTimeoutMsg:
		if m.feedbackMessage.expired() {
			m.feedbackMessage = nil
		}
		return m, nil
	}

	return m, m.updateInput(msg)
}

func (m *RegisterFormModel) focusedName() models.FieldName {
	if m.focus < len(m.order) {
		return m.order[m.focus]
	}
	return ""
}

func (m *RegisterFormModel) onSubmitButton() bool {
	return m.focus == len(m.order)
}

// updateInput forwards msg to the focused input and reformats the national
// ID and phone as they are typed
func (m *RegisterFormModel) updateInput(msg tea.Msg) tea.Cmd {
	name := m.focusedName()
	input, ok := m.inputs[name]
	if !ok {
		return nil
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)

	if _, isKey := msg.(tea.KeyMsg); !isKey {
		return cmd
	}

	value := input.Value()
	switch name {
	case models.FieldNationalID:
		value = utils.FormatNationalID(value)
	case models.FieldContact:
		value = utils.FormatPhone(value)
	}
	if value != input.Value() {
		input.SetValue(value)
		input.CursorEnd()
	}
	m.form.SetValue(name, value)

	return cmd
}

func (m *RegisterFormModel) moveFocus(delta int) tea.Cmd {
	var cmds []tea.Cmd

	if name := m.focusedName(); name != "" {
		cmds = append(cmds, m.blur(name))
	}

	stops := len(m.order) + 1
	m.focus = ((m.focus+delta)%stops + stops) % stops

	if input, ok := m.inputs[m.focusedName()]; ok {
		cmds = append(cmds, input.Focus())
	}

	return tea.Batch(cmds...)
}

// blur verifies the field that lost focus. Leaving the postcode field also
// starts an address lookup.
func (m *RegisterFormModel) blur(name models.FieldName) tea.Cmd {
	if input, ok := m.inputs[name]; ok {
		input.Blur()
		m.form.SetValue(name, input.Value())
	}

	m.verifier.Verify(m.form, name)
	m.syncInput(name)

	if name == models.FieldPostcode {
		return m.startLookup()
	}
	return nil
}

func (m *RegisterFormModel) toggleTerms() {
	if m.form.Value(models.FieldTerms) == models.CheckboxOn {
		m.form.SetValue(models.FieldTerms, "")
	} else {
		m.form.SetValue(models.FieldTerms, models.CheckboxOn)
	}
	m.verifier.Verify(m.form, models.FieldTerms)
}

func (m *RegisterFormModel) startLookup() tea.Cmd {
	req, ok := m.lookup.Begin(m.form, m.form.Value(models.FieldPostcode))
	if !ok {
		m.lookupPending = false
		return nil
	}

	m.lookupPending = true
	m.logger.Debug("starting postcode lookup", zap.String("request_id", req.ID))
	return tea.Batch(m.spinner.Tick, fetchAddress(m.lookup, req))
}

func fetchAddress(lookup *address.Lookup, req address.Request) tea.Cmd {
	return func() tea.Msg {
		return AddressLookupMsg{Result: lookup.Fetch(context.Background(), req)}
	}
}

func (m *RegisterFormModel) applyLookup(res address.Result) {
	if !m.lookup.Apply(m.form, res) {
		return
	}

	m.lookupPending = false
	for _, name := range address.DependentFields {
		m.syncInput(name)
	}
}

// syncInput copies the form value back into its input
func (m *RegisterFormModel) syncInput(name models.FieldName) {
	input, ok := m.inputs[name]
	if !ok {
		return
	}
	if value := m.form.Value(name); value != input.Value() {
		input.SetValue(value)
		input.CursorEnd()
	}
}

func (m *RegisterFormModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	if name := m.focusedName(); name != "" {
		if input, ok := m.inputs[name]; ok {
			m.form.SetValue(name, input.Value())
		}
	}

	valid := m.verifier.VerifyAll(m.form)
	for _, name := range m.order {
		m.syncInput(name)
	}

	var problem string
	switch {
	case !valid:
		problem = msgFixFields
	case m.lookupPending:
		problem = msgWaitLookup
	case !m.form.SubmitEnabled:
		problem = m.form.LookupError
		if problem == "" {
			problem = address.InvalidPostcodeMessage
		}
	}

	if problem != "" {
		fb, cmd := newFeedback(FeedbackError, problem, 5*time.Second)
		m.feedbackMessage = fb
		return cmd
	}

	m.submitting = true
	return saveRegistration(m.storage, models.NewRegistrationRecord(m.form), m.logger)
}

func saveRegistration(store *storage.Storage, record models.RegistrationRecord, logger *zap.Logger) tea.Cmd {
	id := uuid.NewString()
	return func() tea.Msg {
		err := store.SaveRegistration(record)
		if err != nil {
			logger.Error("failed to save registration", zap.String("submission_id", id), zap.Error(err))
		} else {
			logger.Info("registration saved",
				zap.String("submission_id", id),
				zap.Bool("encrypted", store.Encrypted()))
		}
		return RegistrationSavedMsg{ID: id, Record: record, Err: err}
	}
}

func (m *RegisterFormModel) View() string {
	var content strings.Builder

	content.WriteString(utils.TitleStyle.Render("Cadastro"))
	content.WriteString("\n\n")

	for i, f := range m.form.Fields() {
		content.WriteString(m.renderField(f, i == m.focus))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	button := utils.ButtonStyle(m.onSubmitButton(), m.form.SubmitEnabled && !m.submitting)
	content.WriteString(button.Render("Enviar"))
	content.WriteString("\n\n")

	content.WriteString(utils.HelpStyle.Render("tab/↓: próximo • shift+tab/↑: anterior • espaço: aceitar termos • ctrl+s: enviar • ctrl+c: sair"))

	if m.feedbackMessage != nil {
		content.WriteString("\n\n")
		content.WriteString(renderFeedback(m.feedbackMessage))
	}

	return utils.ContainerStyle.Render(content.String())
}

func (m *RegisterFormModel) renderField(f *models.Field, focused bool) string {
	labelStyle := utils.LabelStyle
	if focused {
		labelStyle = utils.FocusedLabelStyle
	}

	var content strings.Builder

	if f.IsCheckbox() {
		box := "[ ]"
		if f.Value == models.CheckboxOn {
			box = "[x]"
		}
		content.WriteString(labelStyle.Render(box + " " + f.Label))
	} else {
		content.WriteString(labelStyle.Render(f.Label))
		content.WriteString("\n")
		content.WriteString(m.inputs[f.Name].View())
	}

	if f.Name == models.FieldPostcode {
		if m.lookupPending {
			content.WriteString("\n")
			content.WriteString(m.spinner.View() + " " + utils.HelpStyle.Render(msgLookupPending))
		} else if m.form.LookupError != "" {
			content.WriteString("\n")
			content.WriteString(utils.ErrorStyle.Render("✗ " + m.form.LookupError))
		}
	}

	if f.Message != "" {
		content.WriteString("\n")
		content.WriteString(utils.ErrorStyle.Render("✗ " + f.Message))
	}

	return content.String()
}
