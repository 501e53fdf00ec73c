// Package magick renders annotation primitives to a PNG by driving the
// ImageMagick convert binary. Building the argv is pure and separately
// testable; only Render shells out.
package magick

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/lunaclock/luna/internal/annotate"
	"github.com/lunaclock/luna/internal/skypath"
	"github.com/lunaclock/luna/internal/xslog"
)

const defaultConvert = "convert"

type Renderer struct {
	convert string
	width   int
	height  int
	timeout time.Duration
}

type Option func(*Renderer)

// WithConvert points at a non-default convert binary.
func WithConvert(path string) Option {
	return func(r *Renderer) { r.convert = path }
}

func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) { r.timeout = d }
}

func New(width, height int, opts ...Option) *Renderer {
	r := &Renderer{
		convert: defaultConvert,
		width:   width,
		height:  height,
		timeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render composes the primitives onto a black canvas and writes out.
func (r *Renderer) Render(ctx context.Context, prims []annotate.Primitive, out string) error {
	args := r.buildArgs(prims, out)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, r.convert, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("convert failed: %w\noutput: %s", err, output)
	}

	xslog.FromContext(ctx).InfoContext(ctx, "rendered face",
		xslog.File(out),
		xslog.Duration(time.Since(start)),
	)
	return nil
}

// DebugCard renders a plain text card in place of the face, used when a
// tick fails and the panel should say why.
func (r *Renderer) DebugCard(ctx context.Context, lines []string, out string) error {
	args := []string{
		"-size", fmt.Sprintf("%dx%d", r.width, r.height),
		"xc:black",
		"-fill", "#ddd",
		"-pointsize", "36",
		"-gravity", "center",
		"-annotate", "+0+0", strings.Join(lines, "\n"),
		out,
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.convert, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("convert failed: %w\noutput: %s", err, output)
	}
	return nil
}

func (r *Renderer) buildArgs(prims []annotate.Primitive, out string) []string {
	args := []string{
		"-size", fmt.Sprintf("%dx%d", r.width, r.height),
		"xc:black",
	}

	// The moon render goes down first so the grid draws over it.
	for _, p := range prims {
		if img, ok := p.(annotate.MoonImage); ok {
			args = append(args,
				"(", img.Path, "-background", "black", "-rotate", formatFloat(img.Rotate), ")",
				"-gravity", "center", "-composite",
			)
		}
	}

	for _, p := range prims {
		switch v := p.(type) {
		case annotate.Ring:
			args = append(args,
				"-stroke", v.Color, "-fill", "none",
				"-draw", fmt.Sprintf("circle %s,%s %s,%s",
					formatFloat(r.cx()), formatFloat(r.cy()),
					formatFloat(r.cx()+v.Radius), formatFloat(r.cy())),
			)
		case annotate.Curve:
			args = append(args,
				"-stroke", v.Color, "-fill", "none", "-strokewidth", "3",
				"-draw", "path '"+r.curvePath(v.Points)+"'",
			)
		case annotate.Dot:
			at := r.toScreen(v.At)
			args = append(args,
				"-stroke", "none", "-fill", v.Color,
				"-draw", fmt.Sprintf("circle %s,%s %s,%s",
					formatFloat(at.X), formatFloat(at.Y),
					formatFloat(at.X+v.Radius), formatFloat(at.Y)),
			)
		case annotate.Line:
			from := r.toScreen(v.From)
			to := r.toScreen(v.To)
			args = append(args,
				"-stroke", v.Color, "-fill", "none", "-strokewidth", formatFloat(v.Width),
				"-draw", fmt.Sprintf("line %s,%s %s,%s",
					formatFloat(from.X), formatFloat(from.Y),
					formatFloat(to.X), formatFloat(to.Y)),
			)
		case annotate.Label:
			args = append(args, r.labelArgs(v)...)
		case annotate.Legend:
			args = append(args, r.legendArgs(v)...)
		}
	}

	args = append(args, out)
	return args
}

// labelArgs draws face text. Tilted labels rotate the drawing origin at
// the anchor, so the text baseline runs along the given angle.
func (r *Renderer) labelArgs(l annotate.Label) []string {
	at := r.toScreen(l.At)
	args := []string{
		"-stroke", "none", "-fill", l.Color,
		"-pointsize", formatFloat(l.Size),
		"-gravity", gravityFor(l.Align),
	}
	if l.Angle != 0 {
		return append(args,
			"-draw", fmt.Sprintf("translate %s,%s rotate %s text 0,0 '%s'",
				formatFloat(at.X-float64(r.width)/2), formatFloat(at.Y-float64(r.height)/2),
				formatFloat(l.Angle), escapeText(l.Text)),
		)
	}
	return append(args,
		"-draw", fmt.Sprintf("text %s,%s '%s'",
			formatFloat(at.X-float64(r.width)/2), formatFloat(at.Y-float64(r.height)/2),
			escapeText(l.Text)),
	)
}

const (
	legendSize    = 22.0
	legendSpacing = 30.0
	legendMargin  = 20.0
)

func (r *Renderer) legendArgs(l annotate.Legend) []string {
	args := []string{
		"-stroke", "none", "-fill", l.Color,
		"-pointsize", formatFloat(legendSize),
		"-gravity", "northwest",
	}
	for i, line := range l.Lines {
		y := legendMargin + float64(i)*legendSpacing
		args = append(args,
			"-annotate", fmt.Sprintf("+%d+%d", int(legendMargin), int(y)), line,
		)
	}
	return args
}

// curvePath emits an SVG path: a move to the first knot, then one cubic
// segment per knot pair consuming three points each.
func (r *Renderer) curvePath(points []skypath.Point) string {
	var b strings.Builder

	start := r.toScreen(points[0])
	fmt.Fprintf(&b, "M %s,%s", formatFloat(start.X), formatFloat(start.Y))

	for i := 1; i+2 < len(points); i += 3 {
		cpA := r.toScreen(points[i])
		cpB := r.toScreen(points[i+1])
		knot := r.toScreen(points[i+2])
		fmt.Fprintf(&b, " C %s,%s %s,%s %s,%s",
			formatFloat(cpA.X), formatFloat(cpA.Y),
			formatFloat(cpB.X), formatFloat(cpB.Y),
			formatFloat(knot.X), formatFloat(knot.Y))
	}
	return b.String()
}

func (r *Renderer) cx() float64 { return float64(r.width) / 2 }
func (r *Renderer) cy() float64 { return float64(r.height) / 2 }

// toScreen moves a center-origin point to image coordinates.
func (r *Renderer) toScreen(p skypath.Point) skypath.Point {
	return skypath.Point{X: r.cx() + p.X, Y: r.cy() + p.Y}
}

func gravityFor(a annotate.Align) string {
	switch a {
	case annotate.AlignLeft:
		return "west"
	case annotate.AlignRight:
		return "east"
	default:
		return "center"
	}
}

func formatFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

func escapeText(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
