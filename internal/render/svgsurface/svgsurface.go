// Package svgsurface implements the drawing surface as an SVG document
// streamed to an io.Writer.
package svgsurface

import (
	"fmt"
	"image/color"
	"io"
	"unicode/utf8"

	svg "github.com/ajstarks/svgo"

	"github.com/alexiusacademia/godiag/internal/layout"
	"github.com/alexiusacademia/godiag/internal/render"
)

// Surface is a vector render.Surface. Create one with New, render into
// it, then call End to close the document.
type Surface struct {
	out    io.Writer
	canvas *svg.SVG
	clips  int
	// groups counts the clip groups opened since each Save.
	groups []int
}

// New returns a surface writing SVG markup to w.
func New(w io.Writer) *Surface {
	return &Surface{out: w}
}

// Begin starts the document. The pixel ratio is irrelevant for vector
// output and is ignored.
func (s *Surface) Begin(width, height int, _ float64) {
	s.canvas = svg.New(s.out)
	s.canvas.Start(width, height)
	s.clips = 0
	s.groups = nil
}

func (s *Surface) Save() {
	s.groups = append(s.groups, 0)
}

func (s *Surface) Restore() {
	if len(s.groups) == 0 {
		return
	}
	n := s.groups[len(s.groups)-1]
	s.groups = s.groups[:len(s.groups)-1]
	for ; n > 0; n-- {
		s.canvas.Gend()
	}
}

// ClipRect masks subsequent drawing with a rectangle, implemented as a
// clip-path definition wrapping a group until the matching Restore.
func (s *Surface) ClipRect(x, y, w, h float64) {
	s.clips++
	id := fmt.Sprintf("clip%d", s.clips)
	s.canvas.Def()
	s.canvas.ClipPath(`id="` + id + `"`)
	s.canvas.Rect(int(x), int(y), int(w), int(h))
	s.canvas.ClipEnd()
	s.canvas.DefEnd()
	s.canvas.Group(fmt.Sprintf(`clip-path="url(#%s)"`, id))
	if len(s.groups) > 0 {
		s.groups[len(s.groups)-1]++
	}
}

func coords(pts []layout.Point) (xs, ys []int) {
	xs = make([]int, len(pts))
	ys = make([]int, len(pts))
	for i, p := range pts {
		xs[i] = int(p.X + 0.5)
		ys[i] = int(p.Y + 0.5)
	}
	return xs, ys
}

func rgb(c color.Color) (string, float64) {
	r, g, b, a := c.RGBA()
	return fmt.Sprintf("rgb(%d,%d,%d)", r>>8, g>>8, b>>8), float64(a>>8) / 255
}

func strokeStyle(st render.Stroke) string {
	col, op := rgb(st.Color)
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%.3f;stroke-width:%.2f", col, op, st.Width)
	if len(st.Dash) > 0 {
		style += ";stroke-dasharray:"
		for i, d := range st.Dash {
			if i > 0 {
				style += ","
			}
			style += fmt.Sprintf("%.1f", d)
		}
	}
	return style
}

func (s *Surface) StrokePath(pts []layout.Point, st render.Stroke) {
	if len(pts) < 2 {
		return
	}
	xs, ys := coords(pts)
	s.canvas.Polyline(xs, ys, strokeStyle(st))
}

func (s *Surface) FillPolygon(pts []layout.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	xs, ys := coords(pts)
	col, op := rgb(c)
	s.canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:%.3f;stroke:none", col, op))
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	col, op := rgb(c)
	s.canvas.Rect(int(x), int(y), int(w), int(h),
		fmt.Sprintf("fill:%s;fill-opacity:%.3f;stroke:none", col, op))
}

func (s *Surface) StrokeRect(x, y, w, h float64, st render.Stroke) {
	s.canvas.Rect(int(x), int(y), int(w), int(h), strokeStyle(st))
}

func (s *Surface) DrawText(text string, x, y float64, st render.TextStyle) {
	base := fmt.Sprintf("text-anchor:middle;dominant-baseline:middle;font-family:sans-serif;font-size:%.1fpx", st.Size)
	if st.Outline != nil {
		col, _ := rgb(st.Outline)
		s.canvas.Text(int(x), int(y), text,
			base+fmt.Sprintf(";fill:none;stroke:%s;stroke-width:3", col))
	}
	col, _ := rgb(st.Color)
	s.canvas.Text(int(x), int(y), text, base+";fill:"+col)
}

// MeasureText estimates text bounds; SVG has no measurement facility, so
// a mean glyph aspect of 0.6 is assumed.
func (s *Surface) MeasureText(text string, size float64) (w, h float64) {
	return 0.6 * size * float64(utf8.RuneCountInString(text)), size
}

// End closes any open groups and the document.
func (s *Surface) End() {
	if s.canvas == nil {
		return
	}
	for len(s.groups) > 0 {
		s.Restore()
	}
	s.canvas.End()
	s.canvas = nil
}
