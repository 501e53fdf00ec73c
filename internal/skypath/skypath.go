// Package skypath lays the Moon's daily path out on the clock face.
//
// The face is an annulus around the central moon image. Azimuth becomes a
// direction on the ring (south up, east to the left, y growing downward)
// and altitude becomes a radius inside the annulus, so a rise-to-set arc
// sweeps from the horizon ring up toward the outer edge and back. The
// package produces pure coordinates; rendering backends consume them.
package skypath

import (
	"fmt"
	"time"

	"github.com/lunaclock/luna/internal/astro"
)

// Config carries the face geometry and sampling parameters. It is passed
// in explicitly wherever the layout runs; there are no package defaults
// beyond DefaultStep and DefaultControlK.
type Config struct {
	// InnerRadius and OuterRadius bound the annulus, in pixels.
	InnerRadius float64
	OuterRadius float64
	// DotRadius is the footprint of the position indicator; altitude 0
	// maps just inside the annulus and 90 just inside its outer edge.
	DotRadius float64
	// Step is the sampling interval along the rise-to-set interval.
	Step time.Duration
	// ControlK scales how far Bezier control points sit from their knot.
	ControlK float64
}

const (
	DefaultStep     = 30 * time.Minute
	DefaultControlK = 0.2
)

// LerpAltitude maps an altitude in [0, 90] linearly onto a radius in
// [InnerRadius+DotRadius, OuterRadius-DotRadius]. Altitudes below zero
// are not clamped; interior path samples may dip under the horizon ring.
func (c Config) LerpAltitude(altitude float64) float64 {
	outer := c.OuterRadius - c.DotRadius
	inner := c.InnerRadius + c.DotRadius
	return altitude/90.0*(outer-inner) + inner
}

// Point is a screen coordinate relative to the face center, y down.
type Point struct {
	X float64
	Y float64
}

// PointFor maps an altitude/azimuth pair to a screen point. Azimuth 0
// points up on screen with the face's south-up, east-left convention.
func (c Config) PointFor(altitude, azimuth float64) Point {
	radius := c.LerpAltitude(altitude)
	return Point{
		X: -astro.SinD(azimuth) * radius,
		Y: astro.CosD(azimuth) * radius,
	}
}

// Path is the fitted curve through the sampled positions: the knot
// sequence with Bezier control points interleaved, ready for a
// move-then-cubic-curve draw instruction consuming 3 points per segment.
// For N knots the sequence holds 3N-2 points.
type Path struct {
	Points []Point
}

// Start returns the screen point of the rise end of the path.
func (p Path) Start() Point { return p.Points[0] }

// End returns the screen point of the set end of the path.
func (p Path) End() Point { return p.Points[len(p.Points)-1] }

// Trace samples the Moon's position from rise to set at cfg.Step
// intervals (the set instant is always the final sample) and fits the
// curve through the resulting screen points.
func Trace(p astro.Provider, rise, set astro.Sample, cfg Config) (Path, error) {
	step := cfg.Step
	if step <= 0 {
		step = DefaultStep
	}
	k := cfg.ControlK
	if k == 0 {
		k = DefaultControlK
	}

	var times []time.Time
	for at := rise.Time; at.Before(set.Time); at = at.Add(step) {
		times = append(times, at)
	}
	times = append(times, set.Time)

	knots := make([]Point, 0, len(times))
	for _, at := range times {
		s, err := astro.SampleAt(p, at, rise.Latitude, rise.Longitude)
		if err != nil {
			return Path{}, fmt.Errorf("sampling path at %v: %w", at, err)
		}
		knots = append(knots, cfg.PointFor(s.Altitude(), s.Azimuth()))
	}

	return Path{Points: controlPoints(knots, k)}, nil
}

// controlPoints interleaves Bezier control points with the knots. Each
// interior knot gets a control point before and after it, placed along
// the chord between its neighbours and scaled by k; the endpoints act as
// their own single control point, giving zero curvature at the path ends.
func controlPoints(knots []Point, k float64) []Point {
	out := make([]Point, 0, 3*len(knots)-2)
	out = append(out, knots[0], knots[0])
	for i := 1; i < len(knots)-1; i++ {
		prev, cur, next := knots[i-1], knots[i], knots[i+1]
		dx := (next.X - prev.X) * k
		dy := (next.Y - prev.Y) * k
		out = append(out,
			Point{X: cur.X - dx, Y: cur.Y - dy},
			cur,
			Point{X: cur.X + dx, Y: cur.Y + dy},
		)
	}
	last := knots[len(knots)-1]
	out = append(out, last, last)
	return out
}
