// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#CCCCCC"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#BBBBBB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#777777"}

	// Borders
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#696969"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#D4A017", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#FFFFFF"}
	SelectionBackground     = lipgloss.AdaptiveColor{Light: "#DDF4FF", Dark: "#2D3436"}

	// Buttons
	ButtonTextColor             = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor        = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonSecondaryBgColor      = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonSecondaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#636E72"}
	ButtonDangerBgColor         = lipgloss.AdaptiveColor{Light: "#922B21", Dark: "#922B21"}
	ButtonDangerFocusBgColor    = lipgloss.AdaptiveColor{Light: "#E74C3C", Dark: "#E74C3C"}

	// Form fields
	FormLabelColor        = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#8C8C8C"}
	FormFocusedLabelColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#FFFFFF"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#8C8C8C"}

	// Toasts
	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderErrorColor   = StatusErrorColor
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = StatusWarningColor
)

var (
	SelectionIndicatorStyle lipgloss.Style

	PrimaryButtonStyle          lipgloss.Style
	PrimaryButtonFocusedStyle   lipgloss.Style
	SecondaryButtonStyle        lipgloss.Style
	SecondaryButtonFocusedStyle lipgloss.Style
	DangerButtonStyle           lipgloss.Style
	DangerButtonFocusedStyle    lipgloss.Style

	FieldLabelStyle        lipgloss.Style
	FieldLabelFocusedStyle lipgloss.Style
	FieldErrorStyle        lipgloss.Style
	HintStyle              lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles recreates every Style from the current colors.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	base := lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(ButtonTextColor)
	focused := func(bg lipgloss.TerminalColor) lipgloss.Style {
		return base.Background(bg).Underline(true).UnderlineSpaces(true)
	}

	PrimaryButtonStyle = base.Background(ButtonPrimaryBgColor)
	PrimaryButtonFocusedStyle = focused(ButtonPrimaryFocusBgColor)
	SecondaryButtonStyle = base.Background(ButtonSecondaryBgColor)
	SecondaryButtonFocusedStyle = focused(ButtonSecondaryFocusBgColor)
	DangerButtonStyle = base.Background(ButtonDangerBgColor)
	DangerButtonFocusedStyle = focused(ButtonDangerFocusBgColor)

	FieldLabelStyle = lipgloss.NewStyle().Foreground(FormLabelColor)
	FieldLabelFocusedStyle = lipgloss.NewStyle().Foreground(FormFocusedLabelColor).Bold(true)
	FieldErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
}

// ApplyTheme applies custom theme colors from configuration.
// Empty strings keep the default values.
//   - muted: TextMutedColor + BorderDefaultColor (hints, help text, borders)
//   - errorColor: StatusErrorColor (inline validation messages)
//   - success: StatusSuccessColor (toasts)
func ApplyTheme(muted, errorColor, success string) {
	if muted != "" {
		TextMutedColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
		BorderDefaultColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
	}
	if errorColor != "" {
		StatusErrorColor = lipgloss.AdaptiveColor{Light: errorColor, Dark: errorColor}
		ToastBorderErrorColor = StatusErrorColor
	}
	if success != "" {
		StatusSuccessColor = lipgloss.AdaptiveColor{Light: success, Dark: success}
		ToastBorderSuccessColor = StatusSuccessColor
	}
	rebuildStyles()
}
