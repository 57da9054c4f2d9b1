package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/regform/internal/address"
	"rhystmorgan/regform/internal/storage"
	"rhystmorgan/regform/internal/validation"
)

type ViewState int

const (
	ViewRegister ViewState = iota
	ViewSubmitted
)

type AppModel struct {
	state  ViewState
	width  int
	height int

	storage  *storage.Storage
	verifier *validation.Verifier
	lookup   *address.Lookup
	logger   *zap.Logger

	register     *RegisterFormModel
	confirmation *ConfirmationModel
}

type NavigateMsg struct {
	State ViewState
}

func NewAppModel(store *storage.Storage, verifier *validation.Verifier, lookup *address.Lookup, logger *zap.Logger) *AppModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AppModel{
		state:    ViewRegister,
		storage:  store,
		verifier: verifier,
		lookup:   lookup,
		logger:   logger,
		register: NewRegisterFormModel(verifier, lookup, store, logger),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.register.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case NavigateMsg:
		return m.navigateTo(msg.State)
	}

	switch m.state {
	case ViewRegister:
		if m.register != nil {
			m.register, cmd = m.register.Update(msg)
		}
	case ViewSubmitted:
		if m.confirmation != nil {
			m.confirmation, cmd = m.confirmation.Update(msg)
		}
	}

	return m, cmd
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Carregando..."
	}

	var content string

	switch m.state {
	case ViewRegister:
		if m.register != nil {
			content = m.register.View()
		}
	case ViewSubmitted:
		if m.confirmation != nil {
			content = m.confirmation.View()
		}
	default:
		content = "Tela desconhecida"
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(content)
}

// State returns the screen currently shown
func (m AppModel) State() ViewState {
	return m.state
}

func (m AppModel) navigateTo(state ViewState) (tea.Model, tea.Cmd) {
	m.state = state

	m.logger.Debug("navigate", zap.String("view", viewName(state)))

	switch state {
	case ViewRegister:
		m.register = NewRegisterFormModel(m.verifier, m.lookup, m.storage, m.logger)
		m.register.width, m.register.height = m.width, m.height
		return m, m.register.Init()
	case ViewSubmitted:
		m.confirmation = NewConfirmationModel(m.storage, m.logger)
		m.confirmation.width, m.confirmation.height = m.width, m.height
		return m, m.confirmation.Load()
	}

	return m, nil
}

func viewName(state ViewState) string {
	switch state {
	case ViewRegister:
		return "register"
	case ViewSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

func NavigateTo(state ViewState) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{State: state}
	}
}
