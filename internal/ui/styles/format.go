package styles

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateString shortens plain text to maxWidth cells, ending in "..."
// when cut. Styled strings should go through ansi.Truncate instead.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
