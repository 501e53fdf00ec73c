package skyview

import (
	"strings"
	"testing"
	"time"

	"github.com/lunaclock/luna/internal/skypath"
)

func faceConfig() skypath.Config {
	return skypath.Config{
		InnerRadius: 632,
		OuterRadius: 702,
		DotRadius:   10,
		Step:        30 * time.Minute,
		ControlK:    0.2,
	}
}

func TestRenderDimensions(t *testing.T) {
	t.Parallel()

	v := SkyView{Face: faceConfig()}
	out := v.Render()

	lines := strings.Split(out, "\n")
	if want := dotsHeight / 4; len(lines) != want {
		t.Errorf("rendered %d lines, want %d", len(lines), want)
	}
}

func TestRenderIncludesTimes(t *testing.T) {
	t.Parallel()

	v := SkyView{
		Face:     faceConfig(),
		RiseText: "07:22",
		SetText:  "14:11",
	}
	out := v.Render()

	if !strings.Contains(out, "07:22") || !strings.Contains(out, "14:11") {
		t.Error("rendered view is missing rise/set times")
	}
}

func TestRenderDrawsSomething(t *testing.T) {
	t.Parallel()

	v := SkyView{Face: faceConfig()}
	out := v.Render()

	// The altitude rings alone must set braille dots.
	hasBraille := false
	for _, r := range out {
		if r >= 0x2801 && r <= 0x28FF {
			hasBraille = true
			break
		}
	}
	if !hasBraille {
		t.Error("rendered view has no braille dots")
	}
}

func TestPathKnots(t *testing.T) {
	t.Parallel()

	// 3N-2 points for N=3 knots.
	p := skypath.Path{Points: []skypath.Point{
		{X: 0, Y: 0}, {X: 0, Y: 0},
		{X: 6, Y: 10}, {X: 10, Y: 10}, {X: 14, Y: 10},
		{X: 20, Y: 0}, {X: 20, Y: 0},
	}}

	knots := pathKnots(p)
	if len(knots) != 3 {
		t.Fatalf("got %d knots, want 3", len(knots))
	}
	if knots[0] != (skypath.Point{X: 0, Y: 0}) ||
		knots[1] != (skypath.Point{X: 10, Y: 10}) ||
		knots[2] != (skypath.Point{X: 20, Y: 0}) {
		t.Errorf("knots = %+v", knots)
	}
}
