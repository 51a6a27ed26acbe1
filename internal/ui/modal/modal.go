// Package modal provides a confirm/cancel dialog.
//
// The modal never acts on its own: it answers with exactly one ConfirmMsg or
// CancelMsg carrying the Tag it was opened with, and the owner decides what
// to do.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/enrol/internal/keys"
	"github.com/zjrosen/enrol/internal/ui/overlay"
	"github.com/zjrosen/enrol/internal/ui/styles"
)

// ButtonVariant controls the styling of the confirm button.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota // Blue (default)
	ButtonDanger                       // Red, for destructive actions
)

const (
	zoneConfirmButton = "modal-confirm"
	zoneCancelButton  = "modal-cancel"

	defaultMinWidth = 40
)

// Config controls modal appearance.
type Config struct {
	Title          string
	Message        string
	ConfirmLabel   string // default "Confirm"
	CancelLabel    string // default "Cancel"
	ConfirmVariant ButtonVariant
	MinWidth       int // 0 = 40
	Tag            any // echoed back in ConfirmMsg / CancelMsg
}

// ConfirmMsg is sent when the user accepts.
type ConfirmMsg struct{ Tag any }

// CancelMsg is sent when the user refuses.
type CancelMsg struct{ Tag any }

// Button identifies which button is focused.
type Button int

const (
	ButtonConfirm Button = iota
	ButtonCancel
)

// Model is the modal component state.
type Model struct {
	config  Config
	focused Button
	width   int
	height  int
}

// New creates a modal focused on the confirm button.
func New(cfg Config) Model {
	if cfg.ConfirmLabel == "" {
		cfg.ConfirmLabel = "Confirm"
	}
	if cfg.CancelLabel == "" {
		cfg.CancelLabel = "Cancel"
	}
	return Model{config: cfg, focused: ButtonConfirm}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles keys and clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Modal.Confirm):
			return m, m.confirm()
		case key.Matches(msg, keys.Modal.Cancel):
			return m, m.cancel()
		case key.Matches(msg, keys.Modal.Toggle):
			if m.focused == ButtonConfirm {
				m.focused = ButtonCancel
			} else {
				m.focused = ButtonConfirm
			}
		case key.Matches(msg, keys.Modal.Select):
			if m.focused == ButtonConfirm {
				return m, m.confirm()
			}
			return m, m.cancel()
		}

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		if z := zone.Get(zoneConfirmButton); z != nil && z.InBounds(msg) {
			m.focused = ButtonConfirm
			return m, m.confirm()
		}
		if z := zone.Get(zoneCancelButton); z != nil && z.InBounds(msg) {
			m.focused = ButtonCancel
			return m, m.cancel()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) confirm() tea.Cmd {
	tag := m.config.Tag
	return func() tea.Msg { return ConfirmMsg{Tag: tag} }
}

func (m Model) cancel() tea.Cmd {
	tag := m.config.Tag
	return func() tea.Msg { return CancelMsg{Tag: tag} }
}

// View renders the modal box without overlay.
func (m Model) View() string {
	contentWidth := max(defaultMinWidth, m.config.MinWidth, lipgloss.Width(m.config.Title))
	boxWidth := contentWidth + 2

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	var body strings.Builder
	if m.config.Message != "" {
		// word wrap first, then hard wrap anything longer than a line (emails)
		msg := wrap.String(wordwrap.String(m.config.Message, contentWidth), contentWidth)
		body.WriteString(lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor).
			Render(msg))
		body.WriteString("\n\n")
	}
	body.WriteString(m.renderButtons())

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.config.Title))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Padding(1, 1).Render(body.String()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(b.String())
}

func (m Model) renderButtons() string {
	confirmStyle := styles.PrimaryButtonStyle
	if m.focused == ButtonConfirm {
		confirmStyle = styles.PrimaryButtonFocusedStyle
	}
	if m.config.ConfirmVariant == ButtonDanger {
		confirmStyle = styles.DangerButtonStyle
		if m.focused == ButtonConfirm {
			confirmStyle = styles.DangerButtonFocusedStyle
		}
	}

	cancelStyle := styles.SecondaryButtonStyle
	if m.focused == ButtonCancel {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}

	confirm := zone.Mark(zoneConfirmButton, confirmStyle.Render(m.config.ConfirmLabel))
	cancel := zone.Mark(zoneCancelButton, cancelStyle.Render(m.config.CancelLabel))
	return confirm + "  " + cancel
}

// Overlay renders the modal centered on bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize records the viewport size used for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focused returns the focused button.
func (m Model) Focused() Button {
	return m.focused
}

// Tag returns the value the modal was opened with.
func (m Model) Tag() any {
	return m.config.Tag
}
