package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorMoonlight = lipgloss.Color("#E8E6E3") // path and indicator
	ColorGrid      = lipgloss.Color("#4A5568") // altitude rings
	ColorHorizon   = lipgloss.Color("#718096") // horizon ring and cardinals
	ColorAccent    = lipgloss.Color("#F6E05E") // rise/set times
	ColorBgDark    = lipgloss.Color("#0B0E14")
)

type Theme struct {
	background color.Color
	foreground color.Color
	base       lipgloss.Style
}

func New() Theme {
	var t Theme

	t.background = ColorBgDark
	t.foreground = ColorMoonlight
	t.base = lipgloss.NewStyle().Foreground(t.foreground)

	return t
}

func (t Theme) Base() lipgloss.Style { return t.base }

func (t Theme) TextAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorAccent)
}

func (t Theme) TextDim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorDim)
}

func (t Theme) Background() color.Color { return t.background }

func (t Theme) Foreground() color.Color { return t.foreground }
