package model

import (
	"fmt"
	"math"
)

// DisplacementField wraps the solver's flat displacement vector. The
// layout is nodeCount blocks of dof scalars: offsets 0..2 are the
// translations along x, y, z; offsets 3..5 (spatial analysis only) are
// the rotations about x, y, z.
type DisplacementField struct {
	vals []float64
	dof  int
}

// NewDisplacementField infers the per-node degree-of-freedom count from
// the vector length. A length not divisible by nodeCount, or a quotient
// other than 3 or 6, is a caller contract violation and fails fast.
func NewDisplacementField(vals []float64, nodeCount int) (*DisplacementField, error) {
	if nodeCount <= 0 {
		return nil, fmt.Errorf("displacement field: node count must be positive, got %d", nodeCount)
	}
	if len(vals)%nodeCount != 0 {
		return nil, fmt.Errorf("displacement field: length %d not divisible by node count %d",
			len(vals), nodeCount)
	}
	dof := len(vals) / nodeCount
	if dof != 3 && dof != 6 {
		return nil, fmt.Errorf("displacement field: %d dof per node, want 3 or 6", dof)
	}
	return &DisplacementField{vals: vals, dof: dof}, nil
}

// Dof returns the per-node degree-of-freedom count (3 or 6).
func (f *DisplacementField) Dof() int {
	return f.dof
}

// Translation returns the translation vector of node n.
func (f *DisplacementField) Translation(n int) Point3 {
	base := n * f.dof
	if base < 0 || base+2 >= len(f.vals) {
		return Point3{}
	}
	return Point3{f.vals[base], f.vals[base+1], f.vals[base+2]}
}

// Rotation returns the rotation vector of node n. In planar analysis
// (dof = 3) all rotations are zero.
func (f *DisplacementField) Rotation(n int) Point3 {
	if f.dof < 6 {
		return Point3{}
	}
	base := n*f.dof + 3
	if base < 0 || base+2 >= len(f.vals) {
		return Point3{}
	}
	return Point3{f.vals[base], f.vals[base+1], f.vals[base+2]}
}

// MaxTranslation returns the largest nodal translation magnitude.
func (f *DisplacementField) MaxTranslation() float64 {
	var max float64
	n := len(f.vals) / f.dof
	for i := 0; i < n; i++ {
		if m := f.Translation(i).Norm(); m > max {
			max = m
		}
	}
	if math.IsInf(max, 0) || math.IsNaN(max) {
		return 0
	}
	return max
}
