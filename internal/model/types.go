// Package model holds the read-only input snapshot consumed by the
// diagram engine: nodes, members, end forces, the displacement field and
// capacity-ratio records. The engine never mutates a Model; callers build
// a fresh snapshot per render invocation.
package model

import (
	"fmt"
	"math"
)

// Point3 is a position or displacement in model space.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p scaled by s.
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Dot returns the dot product of p and q.
func (p Point3) Dot(q Point3) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p × q.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

// Norm returns the Euclidean length of p.
func (p Point3) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// Node is one joint of the skeletal model. Y and Z are optional in the
// input and default to zero; Support is a free-form support kind carried
// for display only.
type Node struct {
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Z       float64 `json:"z,omitempty" yaml:"z,omitempty"`
	Support string  `json:"support,omitempty" yaml:"support,omitempty"`
}

// Point returns the node position.
func (n Node) Point() Point3 {
	return Point3{n.X, n.Y, n.Z}
}

// Member connects two nodes by index. End-connection kinds (rigid or
// pinned) are carried for display only.
type Member struct {
	I     int    `json:"i" yaml:"i"`
	J     int    `json:"j" yaml:"j"`
	IConn string `json:"i_conn,omitempty" yaml:"i_conn,omitempty"`
	JConn string `json:"j_conn,omitempty" yaml:"j_conn,omitempty"`
}

// MemberForce holds the reported end values for one member. All fields
// are optional: a nil component is resolved through its fallback chain
// (for example Mz_i falls back to the generic M_i) and ultimately to
// zero. W, Wz and Wx are known distributed loads; when absent the
// evaluator derives an equivalent uniform load from the end shears.
type MemberForce struct {
	Ni *float64 `json:"n_i,omitempty" yaml:"n_i,omitempty"`
	Nj *float64 `json:"n_j,omitempty" yaml:"n_j,omitempty"`

	Qi  *float64 `json:"q_i,omitempty" yaml:"q_i,omitempty"`
	Qj  *float64 `json:"q_j,omitempty" yaml:"q_j,omitempty"`
	Qyi *float64 `json:"qy_i,omitempty" yaml:"qy_i,omitempty"`
	Qyj *float64 `json:"qy_j,omitempty" yaml:"qy_j,omitempty"`
	Qzi *float64 `json:"qz_i,omitempty" yaml:"qz_i,omitempty"`
	Qzj *float64 `json:"qz_j,omitempty" yaml:"qz_j,omitempty"`

	Mi  *float64 `json:"m_i,omitempty" yaml:"m_i,omitempty"`
	Mj  *float64 `json:"m_j,omitempty" yaml:"m_j,omitempty"`
	Myi *float64 `json:"my_i,omitempty" yaml:"my_i,omitempty"`
	Myj *float64 `json:"my_j,omitempty" yaml:"my_j,omitempty"`
	Mzi *float64 `json:"mz_i,omitempty" yaml:"mz_i,omitempty"`
	Mzj *float64 `json:"mz_j,omitempty" yaml:"mz_j,omitempty"`

	W  *float64 `json:"w,omitempty" yaml:"w,omitempty"`
	Wz *float64 `json:"wz,omitempty" yaml:"wz,omitempty"`
	Wx *float64 `json:"wx,omitempty" yaml:"wx,omitempty"`
}

// DistributedLoad is a display-only record of a transverse member load.
// It is carried on the model for the benefit of the external viewer and
// plays no part in the force-diagram math.
type DistributedLoad struct {
	Member     int     `json:"member" yaml:"member"`
	Wy         float64 `json:"wy,omitempty" yaml:"wy,omitempty"`
	Wz         float64 `json:"wz,omitempty" yaml:"wz,omitempty"`
	SelfWeight bool    `json:"self_weight,omitempty" yaml:"self_weight,omitempty"`
}

// RatioRecord holds capacity-ratio samples for one member, uniformly
// spaced from end i to end j. A single value means the ratio is constant
// along the member.
type RatioRecord struct {
	Member int       `json:"member" yaml:"member"`
	Values []float64 `json:"values" yaml:"values"`
}

// Model is the complete input snapshot for one render invocation.
type Model struct {
	Nodes         []Node
	Members       []Member
	Forces        []MemberForce
	Ratios        []RatioRecord
	Loads         []DistributedLoad
	Displacements *DisplacementField

	ratioByMember map[int][]float64
}

// NewModel validates the snapshot and returns a Model. Member endpoint
// indices must refer to existing nodes; this is a caller contract
// violation, not a soft-skip case.
func NewModel(nodes []Node, members []Member) (*Model, error) {
	for k, m := range members {
		if m.I < 0 || m.I >= len(nodes) || m.J < 0 || m.J >= len(nodes) {
			return nil, fmt.Errorf("member %d references node out of range (i=%d, j=%d, nodes=%d)",
				k, m.I, m.J, len(nodes))
		}
	}
	return &Model{Nodes: nodes, Members: members}, nil
}

// Force returns the force record for member m, or nil when the force
// input is sparse or absent for it.
func (md *Model) Force(m int) *MemberForce {
	if m < 0 || m >= len(md.Forces) {
		return nil
	}
	return &md.Forces[m]
}

// SetRatios attaches capacity-ratio records, indexed for lookup.
func (md *Model) SetRatios(recs []RatioRecord) {
	md.Ratios = recs
	md.ratioByMember = make(map[int][]float64, len(recs))
	for _, r := range recs {
		if len(r.Values) > 0 {
			md.ratioByMember[r.Member] = r.Values
		}
	}
}

// RatioAt linearly interpolates the capacity ratio of member m at the
// normalized position xi. Members without ratio data report zero.
func (md *Model) RatioAt(m int, xi float64) float64 {
	vals := md.ratioByMember[m]
	switch len(vals) {
	case 0:
		return 0
	case 1:
		return vals[0]
	}
	if xi <= 0 {
		return vals[0]
	}
	if xi >= 1 {
		return vals[len(vals)-1]
	}
	t := xi * float64(len(vals)-1)
	k := int(t)
	if k >= len(vals)-1 {
		return vals[len(vals)-1]
	}
	f := t - float64(k)
	return vals[k] + (vals[k+1]-vals[k])*f
}

// MaxRatio returns the largest ratio sample of member m, or zero.
func (md *Model) MaxRatio(m int) float64 {
	var max float64
	for _, v := range md.ratioByMember[m] {
		if v > max {
			max = v
		}
	}
	return max
}

// MemberLength returns the undeformed length of member m.
func (md *Model) MemberLength(m int) float64 {
	if m < 0 || m >= len(md.Members) {
		return 0
	}
	mb := md.Members[m]
	return md.Nodes[mb.J].Point().Sub(md.Nodes[mb.I].Point()).Norm()
}

// BoundingDiagonal returns the diagonal size of the structure's
// axis-aligned bounding box, used to estimate display scales.
func (md *Model) BoundingDiagonal() float64 {
	if len(md.Nodes) == 0 {
		return 0
	}
	min := md.Nodes[0].Point()
	max := min
	for _, n := range md.Nodes[1:] {
		p := n.Point()
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}
	return max.Sub(min).Norm()
}
