// Package layout places numeric callouts near their anchor points while
// avoiding rectangles already claimed by earlier labels. Placement is a
// greedy first-fit over a fixed candidate order; the obstacle list is an
// explicit accumulator threaded through the caller's placement sequence,
// so the result is deterministic for a given ordering.
package layout

// Point is a position in canvas pixels.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned pixel rectangle with X1 <= X2 and Y1 <= Y2.
type Rect struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Overlaps reports whether r and o intersect, by interval overlap on
// both axes. Touching edges do not count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.X2 <= o.X1 || o.X2 <= r.X1 {
		return false
	}
	if r.Y2 <= o.Y1 || o.Y2 <= r.Y1 {
		return false
	}
	return true
}

// Offset is a candidate label displacement from the anchor.
type Offset struct {
	Dx float64
	Dy float64
}

// DefaultOffsets returns the standard candidate order: the four cardinal
// directions, the four diagonals, the four far cardinal variants, and
// finally the anchor itself. Closer candidates come first so placement
// stays local when space allows.
func DefaultOffsets(gap float64) []Offset {
	d := gap
	return []Offset{
		{d, 0}, {-d, 0}, {0, -d}, {0, d},
		{d, -d}, {-d, -d}, {d, d}, {-d, d},
		{2 * d, 0}, {-2 * d, 0}, {0, -2 * d}, {0, 2 * d},
		{0, 0},
	}
}

// DirectionalOffsets derives candidates from a member's unit tangent
// (tx, ty): both sides along the normal first, then shifted along the
// tangent, then farther out on the normal.
func DirectionalOffsets(tx, ty, gap float64) []Offset {
	nx, ny := -ty, tx
	return []Offset{
		{nx * gap, ny * gap},
		{-nx * gap, -ny * gap},
		{nx*gap + tx*gap, ny*gap + ty*gap},
		{nx*gap - tx*gap, ny*gap - ty*gap},
		{-nx*gap + tx*gap, -ny*gap + ty*gap},
		{-nx*gap - tx*gap, -ny*gap - ty*gap},
		{nx * 2 * gap, ny * 2 * gap},
		{-nx * 2 * gap, -ny * 2 * gap},
		{0, 0},
	}
}

// Placement is the outcome of one label search.
type Placement struct {
	At   Point // label center
	Rect Rect  // claimed rectangle
	// Fallback is set when every candidate collided and the anchor
	// position was used; overlap is possible in dense regions.
	Fallback bool
}

// Place finds the first candidate offset whose w×h rectangle, centered
// on anchor+offset, overlaps no obstacle. When all candidates collide it
// falls back to the anchor itself. The chosen rectangle is returned for
// the caller to append to its obstacle accumulator.
func Place(anchor Point, w, h float64, candidates []Offset, obstacles []Rect) Placement {
	if len(candidates) == 0 {
		candidates = DefaultOffsets(12)
	}
	for _, off := range candidates {
		at := Point{anchor.X + off.Dx, anchor.Y + off.Dy}
		r := around(at, w, h)
		if !collides(r, obstacles) {
			return Placement{At: at, Rect: r}
		}
	}
	return Placement{At: anchor, Rect: around(anchor, w, h), Fallback: true}
}

func around(c Point, w, h float64) Rect {
	return Rect{c.X - w/2, c.Y - h/2, c.X + w/2, c.Y + h/2}
}

func collides(r Rect, obstacles []Rect) bool {
	for _, o := range obstacles {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}
