// Package panes renders rounded, titled panels.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/enrol/internal/ui/styles"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures a bordered panel.
type BorderConfig struct {
	Content string
	Width   int // total width including borders
	Height  int // total height including borders

	// Titles embedded in the top and bottom edges, all optional.
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string

	Focused            bool
	TitleColor         lipgloss.TerminalColor // defaults to BorderDefaultColor
	BorderColor        lipgloss.TerminalColor // defaults to BorderDefaultColor
	FocusedBorderColor lipgloss.TerminalColor // defaults to BorderColor
}

// BorderedPane renders content inside a rounded border:
//
//	╭─ TopLeft ──────── TopRight ─╮
//	│content                      │
//	╰─ BottomLeft ────────────────╯
func BorderedPane(cfg BorderConfig) string {
	borderStyle := lipgloss.NewStyle().Foreground(borderColor(cfg))

	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = styles.BorderDefaultColor
	}
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(cfg.Width-2, 1)
	innerHeight := max(cfg.Height-2, 1)

	body := lipgloss.NewStyle().Width(innerWidth).Height(innerHeight).Render(cfg.Content)
	bodyLines := strings.Split(body, "\n")

	var b strings.Builder
	b.WriteString(edge(borderTopLeft, borderTopRight, cfg.TopLeft, cfg.TopRight, innerWidth, borderStyle, titleStyle))
	for i := range innerHeight {
		var line string
		if i < len(bodyLines) {
			line = bodyLines[i]
		}
		// lipgloss may leave the last line short
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		b.WriteString("\n")
		b.WriteString(borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(edge(borderBottomLeft, borderBottomRight, cfg.BottomLeft, cfg.BottomRight, innerWidth, borderStyle, titleStyle))
	return b.String()
}

func borderColor(cfg BorderConfig) lipgloss.TerminalColor {
	base := cfg.BorderColor
	if base == nil {
		base = styles.BorderDefaultColor
	}
	if cfg.Focused && cfg.FocusedBorderColor != nil {
		return cfg.FocusedBorderColor
	}
	return base
}

// edge builds a horizontal border with optional left and right titles:
// ╭─ left ───── right ─╮. Titles that do not fit are truncated, the right
// one first.
func edge(leftCorner, rightCorner, left, right string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// Each title takes "─ title " (left) or " title ─" (right).
	const titleChrome = 3

	if right != "" && lipgloss.Width(right)+titleChrome > innerWidth/2 {
		right = styles.TruncateString(right, max(innerWidth/2-titleChrome, 0))
	}
	rightWidth := 0
	if right != "" {
		rightWidth = lipgloss.Width(right) + titleChrome
	}

	if left != "" && lipgloss.Width(left)+titleChrome > innerWidth-rightWidth {
		left = styles.TruncateString(left, max(innerWidth-rightWidth-titleChrome, 0))
	}
	leftWidth := 0
	if left != "" {
		leftWidth = lipgloss.Width(left) + titleChrome
	}

	fill := max(innerWidth-leftWidth-rightWidth, 0)

	var b strings.Builder
	b.WriteString(borderStyle.Render(leftCorner))
	if left != "" {
		b.WriteString(borderStyle.Render(borderHorizontal+" ") + titleStyle.Render(left) + " ")
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, fill)))
	if right != "" {
		b.WriteString(" " + titleStyle.Render(right) + borderStyle.Render(" "+borderHorizontal))
	}
	b.WriteString(borderStyle.Render(rightCorner))
	return b.String()
}
