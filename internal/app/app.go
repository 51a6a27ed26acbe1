// Package app contains the root application model.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/enrol/internal/config"
	"github.com/zjrosen/enrol/internal/keys"
	"github.com/zjrosen/enrol/internal/log"
	"github.com/zjrosen/enrol/internal/pubsub"
	"github.com/zjrosen/enrol/internal/registration"
	"github.com/zjrosen/enrol/internal/registry"
	"github.com/zjrosen/enrol/internal/tracing"
	"github.com/zjrosen/enrol/internal/ui/modal"
	"github.com/zjrosen/enrol/internal/ui/regform"
	"github.com/zjrosen/enrol/internal/ui/shared/logoverlay"
	"github.com/zjrosen/enrol/internal/ui/shared/panes"
	"github.com/zjrosen/enrol/internal/ui/shared/table"
	"github.com/zjrosen/enrol/internal/ui/styles"
	"github.com/zjrosen/enrol/internal/ui/toaster"
	"github.com/zjrosen/enrol/internal/watcher"
)

type pane int

const (
	paneForm pane = iota
	paneTable
)

const (
	// formPaneWidth is the form's width when it sits beside the table.
	formPaneWidth = 52
	// sideBySideMinWidth is the narrowest screen that fits form and table
	// next to each other.
	sideBySideMinWidth = 100
	minTableHeight     = 4
)

// Options configures a new Model.
type Options struct {
	Config     config.Config
	ConfigPath string // where help visibility is persisted; "" disables saving
	Registry   *registry.Registry
	Tracer     trace.Tracer // nil means no tracing
	Debug      bool         // enables the log overlay

	// ConfigChanges and Reload enable live config reload. Both or neither.
	ConfigChanges pubsub.Subscriber[watcher.Change]
	Reload        func() (config.Config, error)
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	registry   *registry.Registry
	tracer     trace.Tracer

	focus    pane
	form     regform.Model
	users    table.Model
	selected int

	confirming bool
	modal      modal.Model

	toaster  toaster.Model
	help     help.Model
	showHelp bool

	debug      bool
	logOverlay logoverlay.Model

	ctx              context.Context
	cancel           context.CancelFunc
	logListener      *log.LogListener
	registryListener *pubsub.ContinuousListener[registry.UserRecord]
	configListener   *pubsub.ContinuousListener[watcher.Change]
	reload           func() (config.Config, error)

	width  int
	height int
}

// New creates the root model with keyboard focus on the form.
func New(opts Options) Model {
	reg := opts.Registry
	if reg == nil {
		reg = registry.New()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("enrol")
	}

	ctx, cancel := context.WithCancel(context.Background())

	form, _ := regform.New(reg).Focus()

	h := help.New()
	h.ShowAll = opts.Config.UI.ShowHelp

	m := Model{
		cfg:              opts.Config,
		configPath:       opts.ConfigPath,
		registry:         reg,
		tracer:           tracer,
		focus:            paneForm,
		form:             form,
		users:            newUsersTable(),
		toaster:          toaster.New(),
		help:             h,
		showHelp:         opts.Config.UI.ShowHelp,
		debug:            opts.Debug,
		logOverlay:       logoverlay.New(),
		ctx:              ctx,
		cancel:           cancel,
		registryListener: pubsub.NewContinuousListener[registry.UserRecord](ctx, reg.Broker()),
	}
	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}
	if opts.ConfigChanges != nil && opts.Reload != nil {
		m.configListener = pubsub.NewContinuousListener[watcher.Change](ctx, opts.ConfigChanges)
		m.reload = opts.Reload
	}
	return m.refreshUsers()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.registryListener.Listen()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.configListener != nil {
		cmds = append(cmds, m.configListener.Listen())
	}
	_, blink := m.form.Focus()
	cmds = append(cmds, blink)
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.modal.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		return m.layout(), nil

	case log.LogEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		if m.logListener != nil {
			cmd = tea.Batch(cmd, m.logListener.Listen())
		}
		return m, cmd

	case pubsub.Event[registry.UserRecord]:
		return m.handleRegistryEvent(msg)

	case pubsub.Event[watcher.Change]:
		next, cmd := m.reloadConfig()
		return next, tea.Batch(cmd, next.configListener.Listen())

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case regform.SubmitMsg:
		return m.submit()

	case regform.FocusMsg:
		return m.setFocus(paneForm)

	case modal.ConfirmMsg:
		return m.finishDelete(msg.Tag, true)

	case modal.CancelMsg:
		return m.finishDelete(msg.Tag, false)

	case logoverlay.CloseMsg:
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debug && key.Matches(msg, keys.App.Logs) {
		m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}
	if m.confirming {
		if key.Matches(msg, keys.App.Quit) {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.App.SwitchFocus):
		if m.focus == paneForm {
			return m.setFocus(paneTable)
		}
		return m.setFocus(paneForm)
	}

	if key.Matches(msg, keys.App.Help) && !m.typing() {
		return m.toggleHelp(), nil
	}
	if m.focus == paneTable {
		return m.handleTableKey(msg)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.logOverlay.Visible() {
		return m, nil
	}
	if m.confirming {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		if model, cmd, ok := m.handleTableClick(msg); ok {
			return model, cmd
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) setFocus(p pane) (tea.Model, tea.Cmd) {
	if m.focus == p {
		return m, nil
	}
	m.focus = p

	var cmd tea.Cmd
	if p == paneForm {
		m.form, cmd = m.form.Focus()
	} else {
		m.form = m.form.Blur()
	}
	log.Debug(log.CatUI, "focus changed", "pane", m.paneName())
	return m.layout(), cmd
}

// typing reports whether keystrokes go into a text input.
func (m Model) typing() bool {
	if m.focus != paneForm {
		return false
	}
	f, ok := m.form.FocusedField()
	return ok && f != registration.University
}

func (m Model) paneName() string {
	if m.focus == paneTable {
		return "table"
	}
	return "form"
}

// submit runs one submit attempt inside a span.
func (m Model) submit() (tea.Model, tea.Cmd) {
	email := m.form.Form().Draft().Email
	_, span := tracing.StartSubmit(m.ctx, m.tracer, email)
	defer span.End()

	form, outcome, err := m.form.Submit(m.registry)
	span.AddEvent(tracing.EventValidated, trace.WithAttributes(
		attribute.StringSlice(tracing.AttrInvalid, outcome.Result.Invalid()),
	))
	span.SetAttributes(attribute.Bool(tracing.AttrAccepted, outcome.Accepted))

	if err != nil {
		tracing.RecordError(span, err)
		log.ErrorErr(log.CatApp, "submit failed", err, "email", email)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Could not register "+email, toaster.StyleError, m.cfg.UI.ToastDuration())
		return m, cmd
	}
	m.form = form

	if outcome.DuplicateRow > 0 {
		span.AddEvent(tracing.EventDuplicate, trace.WithAttributes(
			attribute.Int(tracing.AttrDuplicateRow, outcome.DuplicateRow),
		))
	}
	if outcome.Accepted {
		span.SetAttributes(attribute.String(tracing.AttrUniversity, outcome.Record.University))
		span.AddEvent(tracing.EventAdded, trace.WithAttributes(
			attribute.Int(tracing.AttrRows, m.registry.Len()),
		))
	}
	return m.refreshUsers(), nil
}

func (m Model) handleRegistryEvent(ev pubsub.Event[registry.UserRecord]) (tea.Model, tea.Cmd) {
	m = m.refreshUsers()
	next := m.registryListener.Listen()

	var text string
	switch ev.Type {
	case pubsub.AddedEvent:
		text = "Added " + ev.Payload.Email
	case pubsub.RemovedEvent:
		text = "Deleted " + ev.Payload.Email
	default:
		return m, next
	}

	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(text, toaster.StyleSuccess, m.cfg.UI.ToastDuration())
	return m, tea.Batch(cmd, next)
}

// reloadConfig re-reads the config file and applies the UI and theme
// settings. An invalid file leaves the running settings untouched.
func (m Model) reloadConfig() (Model, tea.Cmd) {
	cfg, err := m.reload()
	if err == nil {
		err = config.Validate(cfg)
	}

	var cmd tea.Cmd
	if err != nil {
		log.Warn(log.CatConfig, "config not reloaded", "error", err)
		m.toaster, cmd = m.toaster.Show("Config not reloaded: "+err.Error(), toaster.StyleError, m.cfg.UI.ToastDuration())
		return m, cmd
	}

	if cfg.UI == m.cfg.UI && cfg.Theme == m.cfg.Theme {
		// our own write, e.g. the help toggle
		return m, nil
	}

	styles.ApplyTheme(cfg.Theme.Muted, cfg.Theme.Error, cfg.Theme.Success)
	m.cfg.UI = cfg.UI
	m.cfg.Theme = cfg.Theme
	m.showHelp = cfg.UI.ShowHelp
	m.help.ShowAll = cfg.UI.ShowHelp
	log.Info(log.CatConfig, "config reloaded", "confirm_delete", cfg.UI.ConfirmDelete, "toast_seconds", cfg.UI.ToastSeconds)

	m.toaster, cmd = m.toaster.Show("Config reloaded", toaster.StyleInfo, m.cfg.UI.ToastDuration())
	return m.layout(), cmd
}

func (m Model) toggleHelp() Model {
	m.showHelp = !m.showHelp
	m.help.ShowAll = m.showHelp
	if m.configPath != "" {
		if err := config.SaveShowHelp(m.configPath, m.showHelp); err != nil {
			log.Warn(log.CatConfig, "could not save help setting", "path", m.configPath, "error", err)
		}
	}
	return m.layout()
}

func (m Model) helpView() string {
	if m.focus == paneTable {
		return m.help.View(keys.TableHelp{})
	}
	return m.help.View(keys.FormHelp{})
}

func (m Model) sideBySide() bool {
	return m.width >= sideBySideMinWidth
}

// layout sizes the panes for the current screen and help height.
func (m Model) layout() Model {
	if m.width == 0 || m.height == 0 {
		return m
	}
	m.help.Width = m.width
	helpHeight := lipgloss.Height(m.helpView())
	formHeight := m.form.Height() + 2

	if m.sideBySide() {
		m.form = m.form.SetWidth(formPaneWidth - 2)
		m.users = m.users.SetSize(m.width-formPaneWidth, max(m.height-helpHeight, minTableHeight))
	} else {
		m.form = m.form.SetWidth(m.width - 2)
		m.users = m.users.SetSize(m.width, max(m.height-helpHeight-formHeight, minTableHeight))
	}
	return m.refreshUsers()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	formWidth := m.width
	if m.sideBySide() {
		formWidth = formPaneWidth
	}
	formPane := panes.BorderedPane(panes.BorderConfig{
		Content:            m.form.View(),
		Width:              formWidth,
		Height:             m.form.Height() + 2,
		TopLeft:            "Register",
		Focused:            m.focus == paneForm,
		FocusedBorderColor: styles.BorderHighlightFocusColor,
	})

	selected := -1
	if m.focus == paneTable {
		selected = m.selected
	}
	tablePane := m.users.ViewWithSelection(selected)

	var body string
	if m.sideBySide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, formPane, tablePane)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, formPane, tablePane)
	}
	view := lipgloss.JoinVertical(lipgloss.Left, body, m.helpView())

	if m.confirming {
		view = m.modal.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.debug && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}

// Close stops the event listeners.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
