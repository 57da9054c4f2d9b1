package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/regform/internal/utils"
)

type FeedbackMessage struct {
	Type     FeedbackType
	Message  string
	Duration time.Duration
	ShowTime time.Time
}

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

type FeedbackTimeoutMsg struct{}

func newFeedback(t FeedbackType, message string, duration time.Duration) (*FeedbackMessage, tea.Cmd) {
	fb := &FeedbackMessage{
		Type:     t,
		Message:  message,
		Duration: duration,
		ShowTime: time.Now(),
	}
	return fb, tea.Tick(duration, func(time.Time) tea.Msg {
		return FeedbackTimeoutMsg{}
	})
}

func (f *FeedbackMessage) expired() bool {
	return f == nil || time.Since(f.ShowTime) > f.Duration
}

func renderFeedback(f *FeedbackMessage) string {
	if f == nil {
		return ""
	}

	var color string
	switch f.Type {
	case FeedbackSuccess:
		color = utils.Colours.Green
	case FeedbackError:
		color = utils.Colours.Red
	case FeedbackWarning:
		color = utils.Colours.Yellow
	case FeedbackInfo:
		color = utils.Colours.Blue
	default:
		color = utils.Colours.Text
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Bold(true).
		Render(f.Message)
}
