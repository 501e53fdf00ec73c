package skyview

import (
	drawille "github.com/exrook/drawille-go"
)

// drawCircle plots a ring with the midpoint circle algorithm; integer
// arithmetic keeps the braille dots gap-free.
// see: https://en.wikipedia.org/wiki/Midpoint_circle_algorithm
func drawCircle(canvas *drawille.Canvas, cx, cy, radius int) {
	if radius <= 0 {
		return
	}

	x := radius
	y := 0
	d := 1 - radius

	for x >= y {
		setOctantPoints(canvas, cx, cy, x, y)

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func setOctantPoints(canvas *drawille.Canvas, cx, cy, x, y int) {
	canvas.Set(cx+x, cy-y)
	canvas.Set(cx+y, cy-x)
	canvas.Set(cx-y, cy-x)
	canvas.Set(cx-x, cy-y)
	canvas.Set(cx-x, cy+y)
	canvas.Set(cx-y, cy+x)
	canvas.Set(cx+y, cy+x)
	canvas.Set(cx+x, cy+y)
}

// drawDisc fills a small circle, used for the position indicator.
func drawDisc(canvas *drawille.Canvas, cx, cy, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				canvas.Set(cx+dx, cy+dy)
			}
		}
	}
}

// drawSegment samples along a straight segment densely enough that no
// dot cell is skipped.
func drawSegment(canvas *drawille.Canvas, x0, y0, x1, y1 float64) {
	dx := x1 - x0
	dy := y1 - y0

	steps := int(max(abs(dx), abs(dy))) * 2
	if steps < 1 {
		steps = 1
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		canvas.Set(int(x0+dx*t+0.5), int(y0+dy*t+0.5))
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
