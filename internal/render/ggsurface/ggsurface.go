// Package ggsurface implements the drawing surface on an in-memory
// raster via gg, with the embedded Go Regular face for text. The result
// is written out as PNG.
package ggsurface

import (
	"fmt"
	"image/color"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/alexiusacademia/godiag/internal/layout"
	"github.com/alexiusacademia/godiag/internal/render"
)

// Surface is a raster render.Surface. Create one with New, render into
// it, then call SavePNG.
type Surface struct {
	ctx   *gg.Context
	fnt   *sfnt.Font
	faces map[float64]font.Face
	ratio float64
}

// New parses the embedded font and returns an empty surface.
func New() (*Surface, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	return &Surface{fnt: fnt, faces: make(map[float64]font.Face), ratio: 1}, nil
}

// Begin allocates the raster at the device pixel size and applies the
// density scale so the engine keeps working in logical pixels.
func (s *Surface) Begin(width, height int, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	s.ratio = pixelRatio
	s.ctx = gg.NewContext(int(float64(width)*pixelRatio), int(float64(height)*pixelRatio))
	s.ctx.Scale(pixelRatio, pixelRatio)
	s.ctx.SetColor(color.White)
	s.ctx.Clear()
}

func (s *Surface) face(size float64) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(s.fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	s.faces[size] = f
	return f
}

func (s *Surface) Save() {
	s.ctx.Push()
}

func (s *Surface) Restore() {
	s.ctx.Pop()
}

func (s *Surface) ClipRect(x, y, w, h float64) {
	s.ctx.DrawRectangle(x, y, w, h)
	s.ctx.Clip()
}

func (s *Surface) StrokePath(pts []layout.Point, st render.Stroke) {
	if len(pts) < 2 {
		return
	}
	s.ctx.SetColor(st.Color)
	s.ctx.SetLineWidth(st.Width)
	s.ctx.SetDash(st.Dash...)
	s.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.ctx.LineTo(p.X, p.Y)
	}
	s.ctx.Stroke()
	s.ctx.SetDash()
}

func (s *Surface) FillPolygon(pts []layout.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	s.ctx.SetColor(c)
	s.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.ctx.LineTo(p.X, p.Y)
	}
	s.ctx.ClosePath()
	s.ctx.Fill()
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	s.ctx.SetColor(c)
	s.ctx.DrawRectangle(x, y, w, h)
	s.ctx.Fill()
}

func (s *Surface) StrokeRect(x, y, w, h float64, st render.Stroke) {
	s.ctx.SetColor(st.Color)
	s.ctx.SetLineWidth(st.Width)
	s.ctx.DrawRectangle(x, y, w, h)
	s.ctx.Stroke()
}

// DrawText draws text centered on (x, y). When an outline color is set
// the string is first stamped around the target position so it stays
// readable over filled envelopes.
func (s *Surface) DrawText(text string, x, y float64, st render.TextStyle) {
	face := s.face(st.Size)
	if face == nil {
		return
	}
	s.ctx.SetFontFace(face)
	if st.Outline != nil {
		s.ctx.SetColor(st.Outline)
		for _, d := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
			s.ctx.DrawStringAnchored(text, x+d[0], y+d[1], 0.5, 0.5)
		}
	}
	s.ctx.SetColor(st.Color)
	s.ctx.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

func (s *Surface) MeasureText(text string, size float64) (w, h float64) {
	face := s.face(size)
	if face == nil {
		return 0, 0
	}
	s.ctx.SetFontFace(face)
	return s.ctx.MeasureString(text)
}

// SavePNG writes the rendered raster to path.
func (s *Surface) SavePNG(path string) error {
	if s.ctx == nil {
		return fmt.Errorf("nothing rendered")
	}
	return s.ctx.SavePNG(path)
}
