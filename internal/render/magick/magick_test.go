package magick

import (
	"strings"
	"testing"

	"github.com/lunaclock/luna/internal/annotate"
	"github.com/lunaclock/luna/internal/skypath"
)

func TestBuildArgsCanvasAndOutput(t *testing.T) {
	t.Parallel()

	r := New(1872, 1404)
	args := r.buildArgs(nil, "/tmp/face.png")

	if args[0] != "-size" || args[1] != "1872x1404" || args[2] != "xc:black" {
		t.Errorf("canvas args = %v", args[:3])
	}
	if args[len(args)-1] != "/tmp/face.png" {
		t.Errorf("last arg = %q, want output path", args[len(args)-1])
	}
}

func TestBuildArgsRing(t *testing.T) {
	t.Parallel()

	r := New(1000, 1000)
	args := r.buildArgs([]annotate.Primitive{
		annotate.Ring{Radius: 100, Color: "#ccc"},
	}, "out.png")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "circle 500,500 600,500") {
		t.Errorf("ring draw missing from args: %s", joined)
	}
	if !strings.Contains(joined, "-stroke #ccc") {
		t.Errorf("ring stroke color missing: %s", joined)
	}
}

func TestBuildArgsLine(t *testing.T) {
	t.Parallel()

	r := New(1000, 1000)
	args := r.buildArgs([]annotate.Primitive{
		annotate.Line{From: skypath.Point{X: 0, Y: -100}, To: skypath.Point{X: 0, Y: -200}, Width: 3, Color: "#ddd"},
	}, "out.png")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "line 500,400 500,300") {
		t.Errorf("line draw missing from args: %s", joined)
	}
	if !strings.Contains(joined, "-strokewidth 3") {
		t.Errorf("line width missing: %s", joined)
	}
}

func TestBuildArgsTiltedLabel(t *testing.T) {
	t.Parallel()

	r := New(1000, 1000)
	args := r.buildArgs([]annotate.Primitive{
		annotate.Label{Text: "11", At: skypath.Point{X: -11, Y: -674.5}, Size: 24, Color: "#ddd", Align: annotate.AlignRight, Angle: 45},
	}, "out.png")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "translate -11,-674.5 rotate 45 text 0,0 '11'") {
		t.Errorf("tilted label draw missing from args: %s", joined)
	}
	if !strings.Contains(joined, "-gravity east") {
		t.Errorf("tilted label gravity missing: %s", joined)
	}
}

func TestCurvePath(t *testing.T) {
	t.Parallel()

	r := New(1000, 1000)

	// Two knots: [k0, k0, k1, k1], a single cubic segment.
	points := []skypath.Point{
		{X: 0, Y: 100}, {X: 0, Y: 100},
		{X: 50, Y: 150}, {X: 50, Y: 150},
	}

	got := r.curvePath(points)
	want := "M 500,600 C 500,600 550,650 550,650"
	if got != want {
		t.Errorf("curvePath = %q, want %q", got, want)
	}
}

func TestCurvePathThreeKnots(t *testing.T) {
	t.Parallel()

	r := New(0, 0) // center at origin keeps coordinates bare

	// Three knots produce 3*3-2 = 7 points and two cubic segments.
	points := []skypath.Point{
		{X: 0, Y: 0}, {X: 0, Y: 0},
		{X: 6, Y: 10}, {X: 10, Y: 10}, {X: 14, Y: 10},
		{X: 20, Y: 0}, {X: 20, Y: 0},
	}

	got := r.curvePath(points)
	want := "M 0,0 C 0,0 6,10 10,10 C 14,10 20,0 20,0"
	if got != want {
		t.Errorf("curvePath = %q, want %q", got, want)
	}
}

func TestBuildArgsMoonImageFirst(t *testing.T) {
	t.Parallel()

	r := New(1000, 1000)
	args := r.buildArgs([]annotate.Primitive{
		annotate.Ring{Radius: 10, Color: "#eee"},
		annotate.MoonImage{Path: "/tmp/moon.jpg", Rotate: -12.5},
	}, "out.png")

	joined := strings.Join(args, " ")
	imgIdx := strings.Index(joined, "/tmp/moon.jpg")
	ringIdx := strings.Index(joined, "circle")
	if imgIdx == -1 || ringIdx == -1 {
		t.Fatalf("missing primitives in args: %s", joined)
	}
	if imgIdx > ringIdx {
		t.Error("moon image composites after the grid; it must go down first")
	}
	if !strings.Contains(joined, "-rotate -12.5") {
		t.Errorf("rotation missing from args: %s", joined)
	}
}

func TestEscapeText(t *testing.T) {
	t.Parallel()

	if got := escapeText("it's"); got != "it\\'s" {
		t.Errorf("escapeText = %q", got)
	}
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 1.0, want: "1"},
		{in: 1.5, want: "1.5"},
		{in: 1.25, want: "1.25"},
		{in: -12.5, want: "-12.5"},
		{in: 0, want: "0"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
