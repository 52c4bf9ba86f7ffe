package msh

import (
	"fmt"
	"strings"
)

// NodeKind is the role of a model in the assembled scene.
type NodeKind int

const (
	NodeEmpty NodeKind = iota
	NodeMesh
	NodeBone
	NodeHardpoint
)

// String returns a human-readable node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeEmpty:
		return "Empty"
	case NodeMesh:
		return "Mesh"
	case NodeBone:
		return "Bone"
	case NodeHardpoint:
		return "Hardpoint"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Naming conventions of the authoring tools for nodes that are not drawn by
// default: shadow volumes, collision primitives, low-detail LODs, terrain cutters.
var (
	hiddenPrefixes = []string{"sv_", "shadowvolume", "collision", "p_", "c_", "terraincutter"}
	hiddenSuffixes = []string{"_lod2", "_lod3", "_lowrez", "_lowres", "shadowvolume"}
)

// Classify decides a node's role. Envelope membership is the most reliable
// bone signal and wins over names; hardpoints ignore any geometry they carry.
func Classify(name string, inEnvelope, hasGeometry bool) NodeKind {
	lower := strings.ToLower(name)
	switch {
	case inEnvelope:
		return NodeBone
	case strings.HasPrefix(lower, "bone"):
		return NodeBone
	case strings.HasPrefix(lower, "hp"):
		return NodeHardpoint
	case hasGeometry:
		return NodeMesh
	default:
		return NodeEmpty
	}
}

// DefaultVisible applies the naming-convention visibility rule used for models
// without a FLGS chunk.
func DefaultVisible(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range hiddenPrefixes {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}
	for _, s := range hiddenSuffixes {
		if strings.HasSuffix(lower, s) {
			return false
		}
	}
	return true
}

// visible resolves a model's visibility: an explicit FLGS chunk wins.
func visible(m *Model) bool {
	if m.Flags != nil {
		return *m.Flags&FlagHidden == 0
	}
	return DefaultVisible(m.Name)
}
