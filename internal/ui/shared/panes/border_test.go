package panes

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestBorderedPane_Dimensions(t *testing.T) {
	out := BorderedPane(BorderConfig{
		Content: "line one\nline two",
		Width:   24,
		Height:  6,
		TopLeft: "Registered users",
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	for _, line := range lines {
		require.Equal(t, 24, lipgloss.Width(line), line)
	}
	require.True(t, strings.HasPrefix(lines[0], "╭─ Registered users"))
	require.True(t, strings.HasPrefix(lines[5], "╰"))
	require.Contains(t, lines[1], "line one")
}

func TestBorderedPane_AllTitles(t *testing.T) {
	out := BorderedPane(BorderConfig{
		Width:       40,
		Height:      3,
		TopLeft:     "Users",
		TopRight:    "3 rows",
		BottomLeft:  "d delete",
		BottomRight: "1/3",
	})

	lines := strings.Split(out, "\n")
	require.Contains(t, lines[0], "Users")
	require.True(t, strings.HasSuffix(lines[0], "3 rows ─╮"))
	require.Contains(t, lines[2], "d delete")
	require.True(t, strings.HasSuffix(lines[2], "1/3 ─╯"))
	for _, line := range lines {
		require.Equal(t, 40, lipgloss.Width(line))
	}
}

func TestBorderedPane_TruncatesLongTitles(t *testing.T) {
	out := BorderedPane(BorderConfig{
		Width:    16,
		Height:   3,
		TopLeft:  "A very long title indeed",
		TopRight: "and a long right one",
	})

	top := strings.Split(out, "\n")[0]
	require.Equal(t, 16, lipgloss.Width(top))
	require.Contains(t, top, "...")
}

func TestBorderedPane_TinySize(t *testing.T) {
	require.NotPanics(t, func() {
		BorderedPane(BorderConfig{Width: 0, Height: 0, TopLeft: "x"})
	})
}

func TestBorderColor(t *testing.T) {
	red := lipgloss.Color("1")
	blue := lipgloss.Color("4")

	require.Equal(t, red, borderColor(BorderConfig{BorderColor: red, Focused: true}))
	require.Equal(t, blue, borderColor(BorderConfig{BorderColor: red, FocusedBorderColor: blue, Focused: true}))
	require.Equal(t, red, borderColor(BorderConfig{BorderColor: red, FocusedBorderColor: blue}))
}
