package app

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/enrol/internal/keys"
	"github.com/zjrosen/enrol/internal/log"
	"github.com/zjrosen/enrol/internal/registry"
	"github.com/zjrosen/enrol/internal/tracing"
	"github.com/zjrosen/enrol/internal/ui/modal"
	"github.com/zjrosen/enrol/internal/ui/shared/table"
	"github.com/zjrosen/enrol/internal/ui/styles"
	"github.com/zjrosen/enrol/internal/ui/toaster"
)

// userRow is one table row: the record and its 1-based position.
type userRow struct {
	row int
	rec registry.UserRecord
}

// pendingDelete travels through the modal as its Tag.
type pendingDelete struct {
	id    uuid.UUID
	row   int
	email string
	span  trace.Span
}

func rowZone(id uuid.UUID) string {
	return "user-row-" + id.String()
}

func deleteZone(id uuid.UUID) string {
	return "user-delete-" + id.String()
}

func text(get func(registry.UserRecord) string) func(any, string, int, bool) string {
	return func(row any, _ string, _ int, _ bool) string {
		return get(row.(userRow).rec)
	}
}

func newUsersTable() table.Model {
	return table.New(table.TableConfig{
		Columns: []table.ColumnConfig{
			{Key: "row", Header: "#", Width: 3, Align: lipgloss.Right, Render: func(row any, _ string, _ int, _ bool) string {
				return strconv.Itoa(row.(userRow).row)
			}},
			{Key: "first", Header: "First name", MinWidth: 6, MaxWidth: 20, Render: text(func(r registry.UserRecord) string { return r.FirstName })},
			{Key: "last", Header: "Last name", MinWidth: 6, MaxWidth: 20, Render: text(func(r registry.UserRecord) string { return r.LastName })},
			{Key: "email", Header: "Email", MinWidth: 10, Render: text(func(r registry.UserRecord) string { return r.Email })},
			{Key: "university", Header: "University", MinWidth: 8, MaxWidth: 22, HideBelow: 60, Render: text(func(r registry.UserRecord) string { return r.University })},
			{Key: "delete", Header: " ", Width: 1, Render: func(row any, _ string, _ int, _ bool) string {
				id := row.(userRow).rec.ID
				return zone.Mark(deleteZone(id), lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render("✕"))
			}},
		},
		ShowHeader:   true,
		ShowBorder:   true,
		Title:        "Users",
		EmptyMessage: "No users registered yet",
		RowZoneID: func(_ int, row any) string {
			return rowZone(row.(userRow).rec.ID)
		},
		FocusedBorderColor: styles.BorderHighlightFocusColor,
	})
}

// refreshUsers reloads rows from the registry and clamps the selection.
func (m Model) refreshUsers() Model {
	records := m.registry.List()
	rows := make([]any, len(records))
	for i, rec := range records {
		rows[i] = userRow{row: i + 1, rec: rec}
	}

	cfg := m.users.Config()
	cfg.Focused = m.focus == paneTable
	cfg.Footer = strconv.Itoa(len(records)) + " registered"

	m.selected = max(min(m.selected, len(records)-1), 0)
	m.users = m.users.SetConfig(cfg).SetRows(rows).EnsureVisible(m.selected)
	return m
}

func (m Model) selectRow(i int) Model {
	if m.registry.Len() == 0 {
		return m
	}
	m.selected = max(min(i, m.registry.Len()-1), 0)
	m.users = m.users.EnsureVisible(m.selected)
	return m
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Table.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Table.Up):
		return m.selectRow(m.selected - 1), nil
	case key.Matches(msg, keys.Table.Down):
		return m.selectRow(m.selected + 1), nil
	case key.Matches(msg, keys.Table.Top):
		return m.selectRow(0), nil
	case key.Matches(msg, keys.Table.Bottom):
		return m.selectRow(m.registry.Len() - 1), nil
	case key.Matches(msg, keys.Table.Delete):
		return m.requestDelete(m.selected)
	}
	return m, nil
}

// handleTableClick resolves a click on a delete control or a row. ok is
// false when the click was outside the table's rows.
func (m Model) handleTableClick(msg tea.MouseMsg) (tea.Model, tea.Cmd, bool) {
	for i, rec := range m.registry.List() {
		if z := zone.Get(deleteZone(rec.ID)); z != nil && z.InBounds(msg) {
			model, cmd := m.requestDelete(i)
			return model, cmd, true
		}
	}
	for i, rec := range m.registry.List() {
		if z := zone.Get(rowZone(rec.ID)); z != nil && z.InBounds(msg) {
			model, cmd := m.setFocus(paneTable)
			return model.(Model).selectRow(i), cmd, true
		}
	}
	return m, nil, false
}

// requestDelete asks to remove the row at index, or removes it straight
// away when confirmation is switched off.
func (m Model) requestDelete(index int) (tea.Model, tea.Cmd) {
	rec, err := m.registry.At(index)
	if err != nil {
		return m, nil
	}

	_, span := tracing.StartDelete(m.ctx, m.tracer, index+1, rec.Email)
	pending := pendingDelete{id: rec.ID, row: index + 1, email: rec.Email, span: span}

	if !m.cfg.UI.ConfirmDelete {
		return m.finishDelete(pending, true)
	}

	log.Debug(log.CatUI, "delete requested", "row", pending.row, "email", rec.Email)
	m.confirming = true
	m.modal = modal.New(modal.Config{
		Title:          "Delete user",
		Message:        "Are you sure you want to delete this user with email: " + rec.Email,
		ConfirmLabel:   "Delete",
		ConfirmVariant: modal.ButtonDanger,
		MinWidth:       50,
		Tag:            pending,
	})
	m.modal.SetSize(m.width, m.height)
	return m, nil
}

// finishDelete applies the answer to a pending delete.
func (m Model) finishDelete(tag any, confirmed bool) (tea.Model, tea.Cmd) {
	m.confirming = false

	pending, ok := tag.(pendingDelete)
	if !ok {
		return m, nil
	}
	defer pending.span.End()
	pending.span.SetAttributes(attribute.Bool(tracing.AttrConfirmed, confirmed))

	if !confirmed {
		log.Debug(log.CatUI, "delete cancelled", "row", pending.row, "email", pending.email)
		return m, nil
	}

	rec, err := m.registry.RemoveByID(pending.id)
	if err != nil {
		tracing.RecordError(pending.span, err)
		log.ErrorErr(log.CatApp, "delete failed", err, "email", pending.email)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Could not delete "+pending.email, toaster.StyleError, m.cfg.UI.ToastDuration())
		return m.refreshUsers(), cmd
	}

	pending.span.AddEvent(tracing.EventRemoved, trace.WithAttributes(
		attribute.Int(tracing.AttrRows, m.registry.Len()),
	))
	log.Info(log.CatRegistry, "user deleted", "email", rec.Email, "row", pending.row, "total", m.registry.Len())
	return m.refreshUsers(), nil
}
