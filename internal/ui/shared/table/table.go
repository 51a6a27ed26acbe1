package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/enrol/internal/ui/shared/panes"
	"github.com/zjrosen/enrol/internal/ui/styles"
)

// Model holds table rendering state.
type Model struct {
	config TableConfig
	rows   []any
	width  int
	height int
	offset int // index of the first visible row
}

// New creates a table. Panics on an invalid config.
func New(cfg TableConfig) Model {
	if err := ValidateConfig(cfg); err != nil {
		panic(err)
	}
	if cfg.EmptyMessage == "" {
		cfg.EmptyMessage = "No data"
	}
	return Model{config: cfg}
}

// SetRows replaces the row data.
func (m Model) SetRows(rows []any) Model {
	m.rows = rows
	m.offset = m.clampOffset(m.offset)
	return m
}

// SetConfig replaces the configuration, keeping rows and scroll position.
func (m Model) SetConfig(cfg TableConfig) Model {
	if cfg.EmptyMessage == "" {
		cfg.EmptyMessage = "No data"
	}
	m.config = cfg
	return m
}

// Config returns the current configuration.
func (m Model) Config() TableConfig {
	return m.config
}

// SetSize sets the outer dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.offset = m.clampOffset(m.offset)
	return m
}

// RowCount returns the number of rows.
func (m Model) RowCount() int {
	return len(m.rows)
}

// Offset returns the index of the first visible row.
func (m Model) Offset() int {
	return m.offset
}

// VisibleRows returns how many data rows fit.
func (m Model) VisibleRows() int {
	h := m.height
	if m.config.ShowBorder {
		h -= 2
	}
	if m.config.ShowHeader {
		h--
	}
	return max(h, 0)
}

// EnsureVisible scrolls so that row index is on screen.
func (m Model) EnsureVisible(index int) Model {
	if index < 0 || index >= len(m.rows) {
		return m
	}
	visible := m.VisibleRows()
	if index < m.offset {
		m.offset = index
	} else if visible > 0 && index >= m.offset+visible {
		m.offset = index - visible + 1
	}
	m.offset = m.clampOffset(m.offset)
	return m
}

func (m Model) clampOffset(offset int) int {
	return max(min(offset, len(m.rows)-m.VisibleRows()), 0)
}

// View renders the table without selection.
func (m Model) View() string {
	return m.render(-1)
}

// ViewWithSelection renders the table with row selected highlighted.
// An out-of-range index means no selection.
func (m Model) ViewWithSelection(selected int) string {
	return m.render(selected)
}

func (m Model) render(selected int) string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	innerWidth, innerHeight := m.width, m.height
	if m.config.ShowBorder {
		innerWidth -= 2
		innerHeight -= 2
	}
	if innerWidth <= 0 || innerHeight <= 0 {
		return ""
	}

	var content string
	if len(m.rows) == 0 {
		content = renderEmptyState(m.config.EmptyMessage, innerWidth, innerHeight)
	} else {
		content = m.renderRows(innerWidth, innerHeight, selected)
	}

	if !m.config.ShowBorder {
		return content
	}
	return panes.BorderedPane(panes.BorderConfig{
		Content:            content,
		Width:              m.width,
		Height:             m.height,
		TopLeft:            m.config.Title,
		BottomLeft:         m.config.Footer,
		BorderColor:        m.config.BorderColor,
		Focused:            m.config.Focused,
		FocusedBorderColor: m.config.FocusedBorderColor,
	})
}

func (m Model) renderRows(innerWidth, innerHeight, selected int) string {
	cols := filterVisibleColumns(m.config.Columns, m.width)
	widths := calculateColumnWidths(cols, innerWidth)

	lines := make([]string, 0, innerHeight)
	if m.config.ShowHeader {
		header := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(renderHeader(cols, widths))
		lines = append(lines, header)
	}

	end := min(m.offset+m.VisibleRows(), len(m.rows))
	for i := m.offset; i < end; i++ {
		line := renderRow(m.rows[i], cols, widths, i == selected, innerWidth)
		if m.config.RowZoneID != nil {
			if id := m.config.RowZoneID(i, m.rows[i]); id != "" {
				line = zone.Mark(id, line)
			}
		}
		lines = append(lines, line)
	}

	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// filterVisibleColumns drops columns whose HideBelow exceeds width.
func filterVisibleColumns(cols []ColumnConfig, width int) []ColumnConfig {
	out := make([]ColumnConfig, 0, len(cols))
	for _, c := range cols {
		if c.HideBelow > 0 && width < c.HideBelow {
			continue
		}
		out = append(out, c)
	}
	return out
}

// calculateColumnWidths distributes width across columns separated by
// single spaces. Fixed columns keep their width; flex columns split the rest
// evenly within their bounds, and any remainder goes to the last flex column
// that can take it.
func calculateColumnWidths(cols []ColumnConfig, width int) []int {
	widths := make([]int, len(cols))
	if len(cols) == 0 {
		return widths
	}

	remaining := width - (len(cols) - 1)
	var flex []int
	for i, c := range cols {
		if c.Width > 0 {
			widths[i] = c.Width
			remaining -= c.Width
		} else {
			flex = append(flex, i)
		}
	}
	if len(flex) == 0 {
		return widths
	}

	remaining = max(remaining, 0)
	share := remaining / len(flex)
	for _, i := range flex {
		w := max(share, cols[i].MinWidth, 1)
		if cols[i].MaxWidth > 0 {
			w = min(w, cols[i].MaxWidth)
		}
		widths[i] = w
		remaining -= w
	}

	for j := len(flex) - 1; j >= 0 && remaining > 0; j-- {
		i := flex[j]
		grow := remaining
		if cols[i].MaxWidth > 0 {
			grow = min(grow, cols[i].MaxWidth-widths[i])
		}
		widths[i] += grow
		remaining -= grow
	}
	return widths
}
