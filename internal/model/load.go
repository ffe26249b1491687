package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// snapshot is the on-disk shape of a model file.
type snapshot struct {
	Nodes         []Node            `json:"nodes" yaml:"nodes"`
	Members       []Member          `json:"members" yaml:"members"`
	Forces        []MemberForce     `json:"forces,omitempty" yaml:"forces,omitempty"`
	Ratios        []RatioRecord     `json:"ratios,omitempty" yaml:"ratios,omitempty"`
	Loads         []DistributedLoad `json:"loads,omitempty" yaml:"loads,omitempty"`
	Displacements []float64         `json:"displacements,omitempty" yaml:"displacements,omitempty"`
}

// LoadFile reads a model snapshot from a JSON or YAML file, selected by
// extension (.yaml/.yml for YAML, anything else parses as JSON).
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	var snap snapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parse model %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parse model %s: %w", path, err)
		}
	}
	return build(snap)
}

func build(snap snapshot) (*Model, error) {
	md, err := NewModel(snap.Nodes, snap.Members)
	if err != nil {
		return nil, err
	}
	md.Forces = snap.Forces
	md.Loads = snap.Loads
	md.SetRatios(snap.Ratios)
	if len(snap.Displacements) > 0 {
		field, err := NewDisplacementField(snap.Displacements, len(snap.Nodes))
		if err != nil {
			return nil, err
		}
		md.Displacements = field
	}
	return md, nil
}
