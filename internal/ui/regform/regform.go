// Package regform is the interactive registration form: three text inputs,
// a university selector and a submit button.
//
// The component owns a registration.Form and keeps the text inputs in sync
// with it. It never touches the registry on its own: a submit key, Enter on
// the last field or a click on the button emits SubmitMsg, and the owner
// answers by calling Submit with its store.
//
// Leaving a field marks it touched, so its inline error appears as soon as
// the user moves on.
package regform

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/enrol/internal/keys"
	"github.com/zjrosen/enrol/internal/log"
	"github.com/zjrosen/enrol/internal/registration"
	"github.com/zjrosen/enrol/internal/ui/styles"
)

// SubmitMsg asks the owner to submit the form.
type SubmitMsg struct{}

// FocusMsg reports that a click moved keyboard focus into the form.
type FocusMsg struct{}

const (
	zoneSubmit  = "regform-submit"
	zoneUniPrev = "regform-university-prev"
	zoneUniNext = "regform-university-next"

	defaultWidth = 50
	noUniversity = -1
)

// textFields are the fields backed by a text input, indexed like Model.inputs.
var textFields = [...]registration.Field{
	registration.FirstName,
	registration.LastName,
	registration.Email,
}

// submitFocus is the focus slot after the last field.
const submitFocus = len(textFields) + 1

var placeholders = map[registration.Field]string{
	registration.FirstName: "Ada",
	registration.LastName:  "Lovelace",
	registration.Email:     "ada@university.edu",
}

func fieldZone(f registration.Field) string {
	return "regform-field-" + f.Name()
}

// Model is the form component state.
type Model struct {
	form       registration.Form
	inputs     [len(textFields)]textinput.Model
	university int  // index into registration.Universities
	focus      int  // 0..len(Fields)-1 for fields, submitFocus for the button
	active     bool // whether the pane has keyboard focus
	width      int
	rows       registration.RowLookup
}

// New returns an empty form. rows resolves duplicate rows in messages and
// may be nil.
func New(rows registration.RowLookup) Model {
	m := Model{
		form:       registration.NewForm(),
		university: noUniversity,
		rows:       rows,
		width:      defaultWidth,
	}
	for i, f := range textFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[f]
		ti.CharLimit = 254
		m.inputs[i] = ti
	}
	return m.resizeInputs()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Form returns the underlying form state.
func (m Model) Form() registration.Form {
	return m.form
}

// FocusedField returns the field with focus. ok is false when the submit
// button is focused.
func (m Model) FocusedField() (registration.Field, bool) {
	if m.focus >= len(registration.Fields) {
		return 0, false
	}
	return registration.Fields[m.focus], true
}

// Active reports whether the form has keyboard focus.
func (m Model) Active() bool {
	return m.active
}

// Focus gives the form keyboard focus, restoring the cursor to the field
// that had it last.
func (m Model) Focus() (Model, tea.Cmd) {
	m.active = true
	return m.focusInput()
}

// Blur removes keyboard focus. The focused field counts as left and is
// marked touched.
func (m Model) Blur() Model {
	m = m.leave()
	m.active = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m
}

// SetWidth sets the rendered width.
func (m Model) SetWidth(width int) Model {
	m.width = max(width, 20)
	return m.resizeInputs()
}

// Height returns the number of lines View renders.
func (m Model) Height() int {
	// each field: 3 section lines + 1 error line; then the button
	return len(registration.Fields)*4 + 1
}

// Submit hands the draft to store. On acceptance the inputs are cleared and
// focus returns to the first field.
func (m Model) Submit(store registration.Store) (Model, registration.Outcome, error) {
	form, outcome, err := m.form.Submit(store)
	if err != nil {
		return m, outcome, err
	}
	m.form = form
	if outcome.Accepted {
		m = m.clearInputs()
		m.focus = 0
		if m.active {
			m, _ = m.focusInput()
		}
	}
	return m, outcome, nil
}

// Update handles keys while active and mouse clicks at any time.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}
		return m.handleKey(msg)
	}

	if i, ok := m.textIndex(); ok && m.active {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Submit):
		return m, submit

	case key.Matches(msg, keys.Form.Next):
		return m.moveFocus(m.focus + 1)

	case key.Matches(msg, keys.Form.Prev):
		return m.moveFocus(m.focus - 1)

	case key.Matches(msg, keys.Form.Activate):
		if m.focus >= len(registration.Fields)-1 {
			return m, submit
		}
		return m.moveFocus(m.focus + 1)

	case key.Matches(msg, keys.Form.Clear):
		return m.clearFocused(), nil
	}

	if m.focus == int(registration.University) {
		switch {
		case key.Matches(msg, keys.Form.OptionPrev):
			return m.cycleUniversity(-1), nil
		case key.Matches(msg, keys.Form.OptionNext):
			return m.cycleUniversity(1), nil
		}
		return m, nil
	}

	i, ok := m.textIndex()
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	m.form = m.form.Set(textFields[i], m.inputs[i].Value())
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	if z := zone.Get(zoneSubmit); z != nil && z.InBounds(msg) {
		return m, submit
	}

	delta := 0
	if z := zone.Get(zoneUniPrev); z != nil && z.InBounds(msg) {
		delta = -1
	} else if z := zone.Get(zoneUniNext); z != nil && z.InBounds(msg) {
		delta = 1
	}
	if delta != 0 {
		m, cmd := m.clickFocus(int(registration.University))
		return m.cycleUniversity(delta), cmd
	}

	for _, f := range registration.Fields {
		if z := zone.Get(fieldZone(f)); z != nil && z.InBounds(msg) {
			return m.clickFocus(int(f))
		}
	}
	return m, nil
}

// clickFocus moves focus to slot, activating the form if needed.
func (m Model) clickFocus(slot int) (Model, tea.Cmd) {
	if m.active {
		return m.moveFocus(slot)
	}
	m.focus = slot
	m, cmd := m.Focus()
	return m, tea.Batch(cmd, func() tea.Msg { return FocusMsg{} })
}

func submit() tea.Msg {
	return SubmitMsg{}
}

// moveFocus marks the current field touched and focuses slot to, wrapping
// around the fields and the button.
func (m Model) moveFocus(to int) (Model, tea.Cmd) {
	slots := submitFocus + 1
	to = ((to % slots) + slots) % slots
	if to == m.focus {
		return m, nil
	}

	m = m.leave()
	m.focus = to
	return m.focusInput()
}

func (m Model) leave() Model {
	if f, ok := m.FocusedField(); ok {
		m.form = m.form.Touch(f)
		log.Debug(log.CatUI, "field left", "field", f.Name(), "error", m.form.Error(f, m.rows))
	}
	return m
}

func (m Model) focusInput() (Model, tea.Cmd) {
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus && m.active {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

func (m Model) textIndex() (int, bool) {
	if m.focus < len(textFields) {
		return m.focus, true
	}
	return 0, false
}

func (m Model) cycleUniversity(delta int) Model {
	n := len(registration.Universities)
	switch {
	case m.university == noUniversity && delta > 0:
		m.university = 0
	case m.university == noUniversity:
		m.university = n - 1
	default:
		m.university = ((m.university+delta)%n + n) % n
	}
	m.form = m.form.Set(registration.University, registration.Universities[m.university])
	return m
}

func (m Model) clearFocused() Model {
	if i, ok := m.textIndex(); ok {
		m.inputs[i].SetValue("")
		m.form = m.form.Set(textFields[i], "")
		return m
	}
	if m.focus == int(registration.University) {
		m.university = noUniversity
		m.form = m.form.Set(registration.University, "")
	}
	return m
}

func (m Model) clearInputs() Model {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.university = noUniversity
	return m
}

func (m Model) resizeInputs() Model {
	// section border (2) + one cell for the cursor
	for i := range m.inputs {
		m.inputs[i].Width = max(m.width-3, 1)
	}
	return m
}

// View renders the fields and the submit button.
func (m Model) View() string {
	lines := make([]string, 0, m.Height())
	for _, f := range registration.Fields {
		focused := m.active && m.focus == int(f)
		section := styles.RenderFormSection(
			[]string{m.fieldContent(f)},
			f.Label(),
			m.hint(f),
			m.width,
			focused,
			styles.BorderHighlightFocusColor,
		)
		lines = append(lines, zone.Mark(fieldZone(f), section))
		lines = append(lines, m.errorLine(f))
	}
	lines = append(lines, m.button())
	return strings.Join(lines, "\n")
}

func (m Model) fieldContent(f registration.Field) string {
	if f != registration.University {
		return m.inputs[f].View()
	}

	value := lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor).Render("Select a university")
	if m.university != noUniversity {
		value = registration.Universities[m.university]
	}
	arrow := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	return zone.Mark(zoneUniPrev, arrow.Render("‹")) + " " + value + " " + zone.Mark(zoneUniNext, arrow.Render("›"))
}

func (m Model) hint(f registration.Field) string {
	if f == registration.University {
		return "←/→"
	}
	return ""
}

func (m Model) errorLine(f registration.Field) string {
	msg := m.form.Error(f, m.rows)
	if msg == "" {
		return ""
	}
	return styles.FieldErrorStyle.Render(" " + styles.TruncateString(msg, m.width-1))
}

func (m Model) button() string {
	style := styles.PrimaryButtonStyle
	if m.active && m.focus == submitFocus {
		style = styles.PrimaryButtonFocusedStyle
	}
	return " " + zone.Mark(zoneSubmit, style.Render("Register"))
}
