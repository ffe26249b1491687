package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/godiag/internal/model"
	"github.com/alexiusacademia/godiag/internal/render"
)

func fp(v float64) *float64 { return &v }

func beamModel(t *testing.T) *model.Model {
	t.Helper()
	mdl, err := model.NewModel(
		[]model.Node{{X: 0}, {X: 4}},
		[]model.Member{{I: 0, J: 1}},
	)
	require.NoError(t, err)
	mdl.Forces = []model.MemberForce{
		{Mi: fp(10), Mj: fp(0), Qi: fp(5), W: fp(2.5)},
	}
	return mdl
}

func TestCurveSamplesMomentEnds(t *testing.T) {
	xs, ys, err := Curve(beamModel(t), render.Moment, 0)
	require.NoError(t, err)
	require.Len(t, xs, curveSamples+1)
	require.Len(t, ys, curveSamples+1)

	assert.InDelta(t, 0.0, xs[0], 1e-12)
	assert.InDelta(t, 4.0, xs[len(xs)-1], 1e-12)
	assert.InDelta(t, 10.0, ys[0], 1e-9)
	assert.InDelta(t, 0.0, ys[len(ys)-1], 1e-9)
}

func TestCurveRejectsBadInput(t *testing.T) {
	mdl := beamModel(t)
	_, _, err := Curve(mdl, render.Moment, 5)
	assert.Error(t, err)

	_, _, err = Curve(mdl, render.Deformation, 0)
	assert.Error(t, err)
}

func TestASCIICurve(t *testing.T) {
	graph, err := ASCIICurve(beamModel(t), render.Moment, 0)
	require.NoError(t, err)
	assert.Contains(t, graph, "member 0")
	assert.NotEmpty(t, graph)
}

func TestSaveCurvePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m0.png")
	require.NoError(t, SaveCurvePlot(beamModel(t), render.Moment, 0, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
