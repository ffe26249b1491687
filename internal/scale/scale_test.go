package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/godiag/internal/frame"
	"github.com/alexiusacademia/godiag/internal/model"
	"github.com/alexiusacademia/godiag/internal/response"
)

// dispModel is a 4 m beam with node 1 displaced in y by dy.
func dispModel(t *testing.T, dy float64) (*model.Model, *response.Evaluator, []*frame.Frame) {
	t.Helper()
	mdl, err := model.NewModel(
		[]model.Node{{X: 0}, {X: 4}},
		[]model.Member{{I: 0, J: 1}},
	)
	require.NoError(t, err)
	field, err := model.NewDisplacementField([]float64{0, 0, 0, 0, dy, 0}, 2)
	require.NoError(t, err)
	mdl.Displacements = field

	ev := response.New(mdl)
	frames := frame.Build(mdl, frame.Probe{
		Threshold: 0,
		NodeValue: func(p frame.PlaneMode, n int) float64 {
			u, v := p.Project(field.Translation(n))
			return math.Hypot(u, v)
		},
	})
	var kept []*frame.Frame
	for _, f := range frames {
		if f.Plane == frame.PlaneXY {
			f.SetViewport(0, 0, 400, 300, 40)
			kept = append(kept, f)
		}
	}
	require.NotEmpty(t, kept)
	return mdl, ev, kept
}

func TestDisplacementScaleKeepsSamplesInside(t *testing.T) {
	mdl, ev, frames := dispModel(t, 0.01)
	s := Displacement(mdl, ev, frames, 0, 20)
	require.Greater(t, s, 0.0)

	const eps = 1e-6
	for _, f := range frames {
		left, top, right, bottom := f.Inner()
		for _, m := range f.Members {
			for k := 0; k <= 20; k++ {
				xi := float64(k) / 20
				p, ok := ev.Deformation(m, xi, s)
				require.True(t, ok)
				px, py := f.PixelPoint(p)
				assert.GreaterOrEqual(t, px, left-eps)
				assert.LessOrEqual(t, px, right+eps)
				assert.GreaterOrEqual(t, py, top-eps)
				assert.LessOrEqual(t, py, bottom+eps)
			}
		}
	}
}

func TestDisplacementScaleMonotonicInMagnitude(t *testing.T) {
	mdl1, ev1, fr1 := dispModel(t, 0.01)
	mdl2, ev2, fr2 := dispModel(t, 0.02)

	s1 := Displacement(mdl1, ev1, fr1, 0, 20)
	s2 := Displacement(mdl2, ev2, fr2, 0, 20)
	require.Greater(t, s1, 0.0)
	require.Greater(t, s2, 0.0)
	assert.LessOrEqual(t, s2, s1)
}

func TestDisplacementManualOverride(t *testing.T) {
	mdl, ev, frames := dispModel(t, 0.01)
	assert.Equal(t, 250.0, Displacement(mdl, ev, frames, 250, 20))
}

func TestDisplacementScaleGuards(t *testing.T) {
	mdl, ev, frames := dispModel(t, 0.01)

	// No displacement field at all.
	bare, err := model.NewModel(mdl.Nodes, mdl.Members)
	require.NoError(t, err)
	assert.Zero(t, Displacement(bare, response.New(bare), frames, 0, 20))

	// No frames.
	assert.Zero(t, Displacement(mdl, ev, nil, 0, 20))

	// All-zero displacements.
	mdlZero, evZero, frZero := func() (*model.Model, *response.Evaluator, []*frame.Frame) {
		m, e, _ := dispModel(t, 0.01)
		field, ferr := model.NewDisplacementField(make([]float64, 6), 2)
		require.NoError(t, ferr)
		m.Displacements = field
		fr := []*frame.Frame{{Plane: frame.PlaneXY}}
		fr[0].SetViewport(0, 0, 400, 300, 40)
		return m, e, fr
	}()
	assert.Zero(t, Displacement(mdlZero, evZero, frZero, 0, 20))
}

func TestPixelScaleRespectsEdges(t *testing.T) {
	mdl, _, frames := dispModel(t, 0.01)
	const peak = 12.0
	sample := func(f *frame.Frame, m int, xi float64) float64 { return peak }

	s := Pixel(mdl, frames, 0.06, peak, 320, 220, 20, sample)
	require.Greater(t, s, 0.0)

	// The solver promise: distance to every edge over |value| never
	// drops below the chosen scale at any sample.
	for _, f := range frames {
		left, top, right, bottom := f.Inner()
		for _, m := range f.Members {
			mb := mdl.Members[m]
			pi := mdl.Nodes[mb.I].Point()
			span := mdl.Nodes[mb.J].Point().Sub(pi)
			for k := 0; k <= 20; k++ {
				xi := float64(k) / 20
				px, py := f.PixelPoint(pi.Add(span.Scale(xi)))
				d := math.Min(math.Min(px-left, right-px), math.Min(py-top, bottom-py))
				assert.GreaterOrEqual(t, d/peak, s)
			}
		}
	}
}

func TestPixelScaleGuards(t *testing.T) {
	mdl, _, frames := dispModel(t, 0.01)
	sample := func(*frame.Frame, int, float64) float64 { return 1 }

	assert.Zero(t, Pixel(mdl, frames, 0.06, 0, 320, 220, 20, sample))
	assert.Zero(t, Pixel(mdl, nil, 0.06, 10, 320, 220, 20, sample))
	assert.Zero(t, Pixel(mdl, frames, 0.06, math.NaN(), 320, 220, 20, sample))
}
