package render

import (
	"image/color"

	"github.com/alexiusacademia/godiag/internal/layout"
)

// Stroke styles a path or rectangle outline.
type Stroke struct {
	Width float64
	Color color.Color
	Dash  []float64
}

// TextStyle styles a text callout. A non-nil Outline is drawn behind the
// glyphs for legibility over filled envelopes.
type TextStyle struct {
	Size    float64
	Color   color.Color
	Outline color.Color
}

// Surface is the abstract 2D drawing target. The engine issues all
// output through this capability set; implementations decide the pixel
// format. Coordinates are in logical pixels with y growing downward;
// Begin fixes the canvas size and the device pixel ratio.
type Surface interface {
	Begin(width, height int, pixelRatio float64)
	Save()
	Restore()
	ClipRect(x, y, w, h float64)
	StrokePath(pts []layout.Point, st Stroke)
	FillPolygon(pts []layout.Point, c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h float64, st Stroke)
	// DrawText draws s centered on (x, y).
	DrawText(s string, x, y float64, st TextStyle)
	MeasureText(s string, size float64) (w, h float64)
}
