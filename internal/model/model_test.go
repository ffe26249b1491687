package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDisplacementFieldInfersDof(t *testing.T) {
	f, err := NewDisplacementField(make([]float64, 6), 2)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Dof())

	f, err = NewDisplacementField(make([]float64, 12), 2)
	require.NoError(t, err)
	assert.Equal(t, 6, f.Dof())
}

func TestNewDisplacementFieldRejectsBadLength(t *testing.T) {
	_, err := NewDisplacementField(make([]float64, 7), 2)
	assert.Error(t, err)

	// Divisible, but the quotient is not a supported dof count.
	_, err = NewDisplacementField(make([]float64, 8), 2)
	assert.Error(t, err)

	_, err = NewDisplacementField(make([]float64, 6), 0)
	assert.Error(t, err)
}

func TestDisplacementAccessors(t *testing.T) {
	vals := []float64{
		1, 2, 3, 0.1, 0.2, 0.3,
		4, 5, 6, 0.4, 0.5, 0.6,
	}
	f, err := NewDisplacementField(vals, 2)
	require.NoError(t, err)

	assert.Equal(t, Point3{1, 2, 3}, f.Translation(0))
	assert.Equal(t, Point3{0.4, 0.5, 0.6}, f.Rotation(1))
	assert.InDelta(t, Point3{4, 5, 6}.Norm(), f.MaxTranslation(), 1e-12)

	planar, err := NewDisplacementField([]float64{1, 2, 3}, 1)
	require.NoError(t, err)
	assert.Equal(t, Point3{}, planar.Rotation(0))
}

func TestNewModelValidatesMembers(t *testing.T) {
	_, err := NewModel([]Node{{X: 0}}, []Member{{I: 0, J: 1}})
	assert.Error(t, err)

	mdl, err := NewModel([]Node{{X: 0}, {X: 1}}, []Member{{I: 0, J: 1}})
	require.NoError(t, err)
	assert.Nil(t, mdl.Force(0))
	assert.Nil(t, mdl.Force(-1))
}

func TestRatioInterpolation(t *testing.T) {
	mdl, err := NewModel([]Node{{X: 0}, {X: 1}}, []Member{{I: 0, J: 1}})
	require.NoError(t, err)
	mdl.SetRatios([]RatioRecord{
		{Member: 0, Values: []float64{0.2, 0.8, 0.4}},
	})

	assert.InDelta(t, 0.2, mdl.RatioAt(0, 0), 1e-12)
	assert.InDelta(t, 0.8, mdl.RatioAt(0, 0.5), 1e-12)
	assert.InDelta(t, 0.4, mdl.RatioAt(0, 1), 1e-12)
	assert.InDelta(t, 0.5, mdl.RatioAt(0, 0.25), 1e-12)
	assert.InDelta(t, 0.8, mdl.MaxRatio(0), 1e-12)

	// Unknown member reports zero, not an error.
	assert.Zero(t, mdl.RatioAt(5, 0.5))
}

func TestGeometryHelpers(t *testing.T) {
	mdl, err := NewModel(
		[]Node{{X: 0}, {X: 3, Y: 4}},
		[]Member{{I: 0, J: 1}},
	)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mdl.MemberLength(0), 1e-12)
	assert.InDelta(t, 5.0, mdl.BoundingDiagonal(), 1e-12)
	assert.Zero(t, mdl.MemberLength(3))
}

const jsonModel = `{
  "nodes": [{"x": 0}, {"x": 4, "support": "pin"}],
  "members": [{"i": 0, "j": 1}],
  "forces": [{"m_i": 10, "m_j": 0, "q_i": 5, "w": 2.5}],
  "ratios": [{"member": 0, "values": [0.45]}],
  "displacements": [0, 0, 0, 0, 0.01, 0]
}`

const yamlModel = `nodes:
  - x: 0
  - x: 4
    support: pin
members:
  - i: 0
    j: 1
forces:
  - m_i: 10
    m_j: 0
    q_i: 5
    w: 2.5
displacements: [0, 0, 0, 0, 0.01, 0]
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileJSON(t *testing.T) {
	mdl, err := LoadFile(writeTemp(t, "model.json", jsonModel))
	require.NoError(t, err)

	require.Len(t, mdl.Nodes, 2)
	assert.Equal(t, "pin", mdl.Nodes[1].Support)
	require.NotNil(t, mdl.Force(0))
	require.NotNil(t, mdl.Force(0).Mi)
	assert.Equal(t, 10.0, *mdl.Force(0).Mi)
	assert.InDelta(t, 0.45, mdl.MaxRatio(0), 1e-12)
	require.NotNil(t, mdl.Displacements)
	assert.Equal(t, 3, mdl.Displacements.Dof())
}

func TestLoadFileYAML(t *testing.T) {
	mdl, err := LoadFile(writeTemp(t, "model.yaml", yamlModel))
	require.NoError(t, err)
	require.Len(t, mdl.Members, 1)
	require.NotNil(t, mdl.Force(0).W)
	assert.Equal(t, 2.5, *mdl.Force(0).W)
}

func TestLoadFileBadDisplacements(t *testing.T) {
	bad := `{"nodes":[{"x":0},{"x":1}],"members":[{"i":0,"j":1}],"displacements":[1,2,3,4,5]}`
	_, err := LoadFile(writeTemp(t, "bad.json", bad))
	assert.ErrorContains(t, err, "not divisible")
}
