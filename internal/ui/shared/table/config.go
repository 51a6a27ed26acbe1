// Package table renders config-driven, bordered tables.
//
// The table is a pure render component: callers own the rows and the
// selection index and pass them in. Each column supplies a Render callback
// that receives the row (as any), the column key, the available width and
// whether the row is selected.
//
//	tbl := table.New(table.TableConfig{
//	    Columns: []table.ColumnConfig{
//	        {Key: "email", Header: "Email", MinWidth: 10, Render: renderEmail},
//	    },
//	    ShowHeader: true,
//	    ShowBorder: true,
//	}).SetRows(rows).SetSize(80, 12)
//	view := tbl.ViewWithSelection(selected)
package table

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ColumnConfig defines a single table column.
//
// Width > 0 fixes the column width; otherwise the column flexes between
// MinWidth and MaxWidth (0 = unbounded) and shares the remaining space.
type ColumnConfig struct {
	Key      string
	Header   string
	Width    int
	MinWidth int
	MaxWidth int
	Align    lipgloss.Position

	// HideBelow hides the column when the table is narrower than this.
	HideBelow int

	// Render returns the cell content. Required.
	Render func(row any, key string, width int, selected bool) string
}

// TableConfig defines the complete table configuration.
type TableConfig struct {
	Columns      []ColumnConfig
	ShowHeader   bool
	ShowBorder   bool
	Title        string // top-left border title
	Footer       string // bottom-left border title
	EmptyMessage string // default "No data"

	// RowZoneID returns a bubblezone ID for a row; "" leaves it unmarked.
	RowZoneID func(index int, row any) string

	Focused            bool
	BorderColor        lipgloss.TerminalColor
	FocusedBorderColor lipgloss.TerminalColor
}

// ValidateConfig reports a config without columns or with a column that
// has no Render callback.
func ValidateConfig(cfg TableConfig) error {
	if len(cfg.Columns) == 0 {
		return errors.New("table config: at least one column is required")
	}
	for i, col := range cfg.Columns {
		if col.Render != nil {
			continue
		}
		if col.Key != "" {
			return fmt.Errorf("table config: column %q has nil Render callback", col.Key)
		}
		return fmt.Errorf("table config: column %d has nil Render callback", i)
	}
	return nil
}
