// Package skyview draws the clock face in the terminal: altitude rings,
// the day's sky path and the current position, as a braille canvas.
package skyview

import (
	"strings"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/lunaclock/luna/internal/skypath"
	"github.com/lunaclock/luna/internal/tui/theme"
)

const (
	// canvas size in braille dots (2 per char width, 4 per char height)
	dotsWidth  = 104
	dotsHeight = 104
)

// SkyView is a renderable snapshot of the face.
type SkyView struct {
	Face     skypath.Config
	Path     skypath.Path
	Dot      skypath.Point
	HasPath  bool
	RiseText string
	SetText  string
	Footer   string
}

func (v SkyView) Render() string {
	c := drawille.NewCanvas()
	canvas := &c

	var (
		cx = dotsWidth / 2
		cy = dotsHeight / 2
		// canvas radius for the outer ring, with a dot of margin
		outer = float64(dotsWidth)/2 - 2
		scale = outer / v.Face.OuterRadius
	)

	for alt := 0.0; alt <= 90; alt += 30 {
		drawCircle(canvas, cx, cy, int(v.Face.LerpAltitude(alt)*scale))
	}

	if v.HasPath {
		knots := pathKnots(v.Path)
		for i := 0; i+1 < len(knots); i++ {
			a := toCanvas(knots[i], scale)
			b := toCanvas(knots[i+1], scale)
			drawSegment(canvas, a.X, a.Y, b.X, b.Y)
		}

		dot := toCanvas(v.Dot, scale)
		drawDisc(canvas, int(dot.X), int(dot.Y), 2)
	}

	face := lipgloss.NewStyle().
		Foreground(theme.ColorMoonlight).
		Render(canvasString(canvas, dotsWidth, dotsHeight))

	lines := []string{face}
	if v.RiseText != "" || v.SetText != "" {
		times := lipgloss.NewStyle().
			Foreground(theme.ColorAccent).
			Render("rise " + v.RiseText + "   set " + v.SetText)
		lines = append(lines, times)
	}
	if v.Footer != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDim).Render(v.Footer))
	}

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// pathKnots extracts the knots from the fitted point sequence: every
// third point, starting at the first.
func pathKnots(p skypath.Path) []skypath.Point {
	var knots []skypath.Point
	for i := 0; i < len(p.Points); i += 3 {
		knots = append(knots, p.Points[i])
	}
	if n := len(p.Points); n > 0 && (n-1)%3 != 0 {
		knots = append(knots, p.Points[n-1])
	}
	return knots
}

func toCanvas(p skypath.Point, scale float64) skypath.Point {
	return skypath.Point{
		X: float64(dotsWidth)/2 + p.X*scale,
		Y: float64(dotsHeight)/2 + p.Y*scale,
	}
}

// canvasString extracts the canvas with fixed dimensions, padding or
// truncating each row to the exact character width.
func canvasString(canvas *drawille.Canvas, width, height int) string {
	charWidth := width / 2
	charHeight := height / 4

	rows := canvas.Rows(0, 0, width, height)

	lines := make([]string, 0, charHeight)
	for i := range charHeight {
		if i < len(rows) {
			line := rows[i]
			runeCount := len([]rune(line))
			if runeCount < charWidth {
				line += strings.Repeat(" ", charWidth-runeCount)
			} else if runeCount > charWidth {
				line = string([]rune(line)[:charWidth])
			}
			lines = append(lines, line)
		} else {
			lines = append(lines, strings.Repeat(" ", charWidth))
		}
	}

	return strings.Join(lines, "\n")
}
