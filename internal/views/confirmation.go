package views

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/regform/internal/models"
	"rhystmorgan/regform/internal/storage"
	"rhystmorgan/regform/internal/utils"
)

const labelWidth = 20

// ConfirmationModel is the page shown after a successful submission. It
// reads the record back from storage rather than trusting the form.
type ConfirmationModel struct {
	storage *storage.Storage
	logger  *zap.Logger

	record  *models.RegistrationRecord
	labels  map[models.FieldName]string
	loading bool
	err     error

	width  int
	height int
}

type RecordLoadedMsg struct {
	Record *models.RegistrationRecord
	Err    error
}

func NewConfirmationModel(store *storage.Storage, logger *zap.Logger) *ConfirmationModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	labels := make(map[models.FieldName]string)
	for _, f := range models.NewRegistrationForm().Fields() {
		labels[f.Name] = f.Label
	}

	return &ConfirmationModel{
		storage: store,
		logger:  logger.Named("confirmation"),
		labels:  labels,
		loading: true,
	}
}

func (m *ConfirmationModel) Load() tea.Cmd {
	store := m.storage
	return func() tea.Msg {
		record, err := store.LoadRegistration()
		return RecordLoadedMsg{Record: record, Err: err}
	}
}

func (m *ConfirmationModel) Update(msg tea.Msg) (*ConfirmationModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case RecordLoadedMsg:
		m.loading = false
		m.record = msg.Record
		m.err = msg.Err
		if msg.Err != nil {
			m.logger.Error("failed to load registration", zap.Error(msg.Err))
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			return m, NavigateTo(ViewRegister)
		case "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *ConfirmationModel) View() string {
	var content strings.Builder

	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Bold(true)

	switch {
	case m.loading:
		content.WriteString(utils.HelpStyle.Render("Carregando cadastro..."))
	case m.err != nil:
		msg := "Não foi possível ler o cadastro salvo."
		if errors.Is(m.err, storage.ErrNotFound) {
			msg = "Nenhum cadastro encontrado."
		}
		content.WriteString(utils.ErrorStyle.Render("✗ " + msg))
	default:
		content.WriteString(successStyle.Render("✓ Cadastro realizado com sucesso!"))
		content.WriteString("\n\n")
		content.WriteString(m.renderRecord())
	}

	content.WriteString("\n\n")
	content.WriteString(utils.HelpStyle.Render("n: novo cadastro • q: sair"))

	return utils.ContainerStyle.Render(content.String())
}

func (m *ConfirmationModel) renderRecord() string {
	var content strings.Builder

	for _, entry := range m.record.Entries() {
		value := entry.Value
		if entry.Field == models.FieldPostcode {
			value = utils.FormatPostcode(value)
		}

		content.WriteString(utils.LabelStyle.Render(utils.PadString(m.labels[entry.Field]+":", labelWidth, ' ')))
		content.WriteString(utils.ValueStyle.Render(utils.TruncateString(value, 48)))
		content.WriteString("\n")
	}

	return strings.TrimSuffix(content.String(), "\n")
}
