// Package annotate turns one clock tick into a list of drawing
// primitives: the altitude grid, the sky path, the position indicator,
// rise/set time labels, compass letters and the legend. Renderers
// consume the primitives; nothing here touches pixels.
package annotate

import (
	"fmt"
	"time"

	"github.com/lunaclock/luna/internal/astro"
	"github.com/lunaclock/luna/internal/skypath"
)

// Grey ramp for the overlay, darker when the moon is thinner.
const (
	colorDarkest  = "#bbb"
	colorDark     = "#ccc"
	colorLight    = "#ddd"
	colorLightest = "#eee"
)

type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

type Primitive interface{ isPrimitive() }

// Ring is a centered circle of the face grid.
type Ring struct {
	Radius float64
	Color  string
}

// Curve is a fitted sky path: knots with interleaved Bezier control
// points, 3N-2 in total.
type Curve struct {
	Points []skypath.Point
	Color  string
}

// Dot marks the Moon's current position on the path.
type Dot struct {
	At     skypath.Point
	Radius float64
	Color  string
}

// Line is a straight stroke between two face points.
type Line struct {
	From  skypath.Point
	To    skypath.Point
	Width float64
	Color string
}

// Label is face text anchored at a point. Angle tilts the text clockwise
// in degrees; the indicator time reads along the azimuth pointer.
type Label struct {
	Text  string
	At    skypath.Point
	Size  float64
	Color string
	Align Align
	Angle float64
}

// Legend is the text block in the face corner.
type Legend struct {
	Lines []string
	Color string
}

// MoonImage is the center render with its screen rotation in degrees.
type MoonImage struct {
	Path   string
	Rotate float64
}

func (Ring) isPrimitive()      {}
func (Curve) isPrimitive()     {}
func (Dot) isPrimitive()       {}
func (Line) isPrimitive()      {}
func (Label) isPrimitive()     {}
func (Legend) isPrimitive()    {}
func (MoonImage) isPrimitive() {}

// Input is everything one tick knows.
type Input struct {
	Now        time.Time
	Current    astro.Sample
	Rise, Set  astro.Sample
	Path       skypath.Path
	Face       skypath.Config
	TZ         *time.Location // zone for all face text, nil for the system zone
	Percent    float64        // percent of the disc illuminated
	ImagePath  string         // downloaded moon render, empty for no image
	ImageAngle float64        // position angle baked into the render
}

const (
	gridStep       = 30.0
	letterSize     = 28.0
	timeSize       = 24.0
	labelMargin    = 26.0
	indicatorWidth = 3.0
)

var cardinals = []struct {
	az     float64
	letter string
}{
	{0, "N"},
	{90, "E"},
	{180, "S"},
	{270, "W"},
}

// Annotate lays out the full overlay for one tick.
func Annotate(in Input) []Primitive {
	color := colorFor(in.Percent)
	tz := in.TZ
	if tz == nil {
		tz = time.Local
	}

	prims := make([]Primitive, 0, 16)

	if in.ImagePath != "" {
		prims = append(prims, MoonImage{
			Path:   in.ImagePath,
			Rotate: in.Current.ParallacticAngle() - in.ImageAngle,
		})
	}

	// Altitude grid: horizon, 30, 60 and zenith rings.
	for alt := 0.0; alt <= 90; alt += gridStep {
		prims = append(prims, Ring{Radius: in.Face.LerpAltitude(alt), Color: color})
	}

	prims = append(prims, Curve{Points: in.Path.Points, Color: color})

	currentAz := in.Current.Azimuth()
	prims = append(prims, indicator(in, currentAz, tz, color)...)

	// Rise and set times sit at the path ends, outside the outer ring.
	// Either yields to the indicator; rise and set may still overlap each
	// other when the path is short enough to start and end together.
	riseAz := in.Rise.Azimuth()
	setAz := in.Set.Azimuth()
	if skypath.CanDrawLabelAt(riseAz, skypath.TimeTextDelta, []float64{currentAz}) {
		prims = append(prims, timeLabel(in.Face, in.Rise.Time.In(tz), riseAz, color))
	}
	if skypath.CanDrawLabelAt(setAz, skypath.TimeTextDelta, []float64{currentAz}) {
		prims = append(prims, timeLabel(in.Face, in.Set.Time.In(tz), setAz, color))
	}

	// Compass letters yield to the indicator and both time labels.
	occupied := []float64{currentAz, riseAz, setAz}
	for _, c := range cardinals {
		if !skypath.CanDrawLabelAt(c.az, skypath.LetterDelta, occupied) {
			continue
		}
		prims = append(prims, Label{
			Text:  c.letter,
			At:    labelAnchor(in.Face, c.az),
			Size:  letterSize,
			Color: color,
			Align: AlignCenter,
		})
	}

	prims = append(prims, Legend{Lines: legendLines(in, tz), Color: color})

	return prims
}

// indicator is the live "now" pointer: a radial line across the annulus
// at the current azimuth, a dot at the lerped altitude while the Moon is
// up, and the current HH and MM straddling the line. Below the horizon
// the dot is hidden and the time sits mid-annulus.
func indicator(in Input, az float64, tz *time.Location, color string) []Primitive {
	alt := in.Current.Altitude()

	prims := []Primitive{Line{
		From:  radialPoint(in.Face.InnerRadius, az),
		To:    radialPoint(in.Face.OuterRadius, az),
		Width: indicatorWidth,
		Color: color,
	}}

	radius := in.Face.LerpAltitude(45)
	shift := indicatorWidth + 1
	if alt > 0 {
		prims = append(prims, Dot{
			At:     in.Face.PointFor(alt, az),
			Radius: in.Face.DotRadius,
			Color:  color,
		})
		radius = in.Face.LerpAltitude(alt)
		shift = in.Face.DotRadius + 1
	}

	// Hours read to one side of the pointer, minutes to the other, both
	// tilted along it. In the upper half (E through S to W) the text is
	// flipped upright, which swaps the sides too.
	anchor := radialPoint(radius, az)
	dx := astro.CosD(az) * shift
	dy := astro.SinD(az) * shift
	angle := az
	if az >= 90 && az <= 270 {
		angle = astro.Normalize360(az + 180)
		dx, dy = -dx, -dy
	}
	now := in.Now.In(tz)
	return append(prims,
		Label{
			Text:  now.Format("15"),
			At:    skypath.Point{X: anchor.X - dx, Y: anchor.Y - dy},
			Size:  timeSize,
			Color: color,
			Align: AlignRight,
			Angle: angle,
		},
		Label{
			Text:  now.Format("04"),
			At:    skypath.Point{X: anchor.X + dx, Y: anchor.Y + dy},
			Size:  timeSize,
			Color: color,
			Align: AlignLeft,
			Angle: angle,
		},
	)
}

func timeLabel(face skypath.Config, at time.Time, az float64, color string) Label {
	return Label{
		Text:  at.Format("15:04"),
		At:    labelAnchor(face, az),
		Size:  timeSize,
		Color: color,
		Align: AlignCenter,
	}
}

// labelAnchor places text just beyond the outer ring at the azimuth's
// direction on screen.
func labelAnchor(face skypath.Config, az float64) skypath.Point {
	return radialPoint(face.OuterRadius+labelMargin, az)
}

// radialPoint maps a radius along an azimuth to screen coordinates with
// the face's south-up, east-left convention.
func radialPoint(radius, az float64) skypath.Point {
	return skypath.Point{
		X: -astro.SinD(az) * radius,
		Y: astro.CosD(az) * radius,
	}
}

func legendLines(in Input, tz *time.Location) []string {
	return []string{
		in.Now.In(tz).Format("Mon 02 Jan 15:04"),
		fmt.Sprintf("rise %s  set %s", in.Rise.Time.In(tz).Format("15:04"), in.Set.Time.In(tz).Format("15:04")),
		fmt.Sprintf("%.0f%% illuminated", in.Percent),
	}
}

// colorFor darkens the overlay as the disc thins, keeping contrast
// against the bright limb.
func colorFor(percent float64) string {
	switch {
	case percent <= 25:
		return colorDarkest
	case percent <= 50:
		return colorDark
	case percent <= 75:
		return colorLight
	default:
		return colorLightest
	}
}
