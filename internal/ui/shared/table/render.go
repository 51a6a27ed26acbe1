package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/enrol/internal/ui/styles"
)

func selectionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(styles.SelectionBackground)
}

// renderHeader renders the header row.
func renderHeader(cols []ColumnConfig, widths []int) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = alignText(styles.TruncateString(col.Header, widths[i]), widths[i], col.Align)
	}
	return strings.Join(parts, " ")
}

// renderRow renders one data row. A selected row carries the selection
// background across every cell and pads it to fullWidth.
func renderRow(row any, cols []ColumnConfig, widths []int, selected bool, fullWidth int) string {
	var b strings.Builder
	for i, col := range cols {
		if i > 0 {
			b.WriteString(paint(" ", selected))
		}
		content := safeRender(row, col, widths[i], selected)
		if lipgloss.Width(content) > widths[i] {
			content = ansi.Truncate(content, widths[i], "...")
		}
		b.WriteString(alignCell(content, widths[i], col.Align, selected))
	}

	line := b.String()
	if w := lipgloss.Width(line); selected && w < fullWidth {
		line += paint(strings.Repeat(" ", fullWidth-w), true)
	}
	return line
}

// alignCell pads content to width, painting padding when selected.
func alignCell(content string, width int, align lipgloss.Position, selected bool) string {
	pad := max(width-lipgloss.Width(content), 0)
	body := withBackground(content, selected)

	switch align {
	case lipgloss.Right:
		return paint(strings.Repeat(" ", pad), selected) + body
	case lipgloss.Center:
		left := pad / 2
		return paint(strings.Repeat(" ", left), selected) + body + paint(strings.Repeat(" ", pad-left), selected)
	default:
		return body + paint(strings.Repeat(" ", pad), selected)
	}
}

func paint(s string, selected bool) string {
	if !selected || s == "" {
		return s
	}
	return selectionStyle().Render(s)
}

// withBackground applies the selection background to content that may
// already carry foreground styling. Full resets inside content are followed
// by the background sequence again so the highlight is not cut short.
func withBackground(content string, selected bool) string {
	if !selected || content == "" {
		return content
	}
	if !strings.Contains(content, "\x1b[") {
		return paint(content, true)
	}

	prefix := strings.TrimSuffix(selectionStyle().Render(" "), " \x1b[0m")
	if prefix == " " {
		// Color profile without styling.
		return content
	}
	return prefix + strings.ReplaceAll(content, "\x1b[0m", "\x1b[0m"+prefix) + "\x1b[0m"
}

// safeRender invokes the Render callback, turning a panic (for example a
// failed type assertion) into a visible placeholder.
func safeRender(row any, col ColumnConfig, width int, selected bool) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = styles.TruncateString(fmt.Sprintf("!ERR:%v", r), width)
		}
	}()
	return col.Render(row, col.Key, width, selected)
}

// renderEmptyState centers msg in a width x height block.
func renderEmptyState(msg string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	text := styles.TruncateString(msg, width)
	styled := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(text)
	line := strings.Repeat(" ", max((width-lipgloss.Width(text))/2, 0)) + styled

	lines := make([]string, height)
	lines[max((height-1)/2, 0)] = line
	return strings.Join(lines, "\n")
}

// alignText pads text to width according to align.
func alignText(text string, width int, align lipgloss.Position) string {
	return alignCell(text, width, align, false)
}
