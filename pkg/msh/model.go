package msh

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/mshkit/pkg/encoding"
	mshmath "github.com/Faultbox/mshkit/pkg/math"
)

// ModelType is the MTYP code of a model.
type ModelType uint32

const (
	ModelNull   ModelType = 0
	ModelSkin   ModelType = 1
	ModelCloth  ModelType = 2
	ModelBone   ModelType = 3
	ModelStatic ModelType = 4
	ModelShadow ModelType = 6
)

// String returns a human-readable model type name.
func (t ModelType) String() string {
	switch t {
	case ModelNull:
		return "Null"
	case ModelSkin:
		return "Skin"
	case ModelCloth:
		return "Cloth"
	case ModelBone:
		return "Bone"
	case ModelStatic:
		return "Static"
	case ModelShadow:
		return "Shadow"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(t))
	}
}

// FlagHidden is the FLGS bit that hides a model.
const FlagHidden uint32 = 1

// Transform is a model's local transform. Scale is carried for completeness
// but does not take part in final placement.
type Transform struct {
	Scale       [3]float32
	Rotation    [4]float32 // x, y, z, w
	Translation [3]float32
}

// IdentityTransform returns a transform with unit scale and no rotation or offset.
func IdentityTransform() Transform {
	return Transform{
		Scale:    [3]float32{1, 1, 1},
		Rotation: [4]float32{0, 0, 0, 1},
	}
}

// Matrix returns the local placement matrix (rotation then translation).
func (t Transform) Matrix() mshmath.Mat4 {
	return mshmath.FromRotationTranslation(
		mshmath.QuatFromArray(t.Rotation),
		mshmath.Vec3FromArray(t.Translation),
	)
}

// Model is one MODL chunk: a scene-graph node.
type Model struct {
	Name         string // lower-cased lookup key
	OriginalName string
	NameCRC      uint32 // CalcLowerCRC of the raw NAME bytes
	Type         ModelType
	Index        uint32 // MNDX, referenced by envelopes
	Parent       string // original-case parent name; "" for roots
	Flags        *uint32
	Transform    Transform
	Geometry     *Geometry
}

// HasParent reports whether the model names a parent.
func (m *Model) HasParent() bool {
	return m.Parent != ""
}

// Geometry is the GEOM chunk of a model. Nil fields mean the chunk was absent.
type Geometry struct {
	Segments []Segment
	Cloth    *Cloth
	Envelope []uint32 // model indices of influencing bones
}

// VertexCount returns the number of segment vertices across all segments.
func (g *Geometry) VertexCount() int {
	n := 0
	for i := range g.Segments {
		n += len(g.Segments[i].Positions)
	}
	return n
}

// ReadModels decodes every MODL chunk in file order.
func ReadModels(data []byte) []Model {
	return newSession(data, nil).readModels()
}

func (s *session) readModels() []Model {
	refs := FindAllChunks(s.data, "MODL", 0, len(s.data))
	models := make([]Model, 0, len(refs))
	for _, ref := range refs {
		models = append(models, s.readModel(ref))
	}
	return models
}

func (s *session) readModel(ref ChunkRef) Model {
	m := Model{Transform: IdentityTransform()}
	if ref.Truncated {
		s.log.Debug("truncated model chunk", zap.Int("offset", ref.Start))
	}

	for _, child := range Children(s.data, ref) {
		switch child.Tag {
		case "MTYP":
			if v, ok := ReadU32(s.data, child.Body()); ok && child.Len() >= 4 {
				m.Type = ModelType(v)
			}
		case "MNDX":
			if v, ok := ReadU32(s.data, child.Body()); ok && child.Len() >= 4 {
				m.Index = v
			}
		case "NAME":
			raw := encoding.CutNull(s.data[child.Body():child.End])
			m.OriginalName = encoding.DecodeName(raw)
			m.Name = strings.ToLower(m.OriginalName)
			m.NameCRC = calcLowerCRC(raw)
		case "PRNT":
			m.Parent = stringChunk(s.data, child)
		case "FLGS":
			if v, ok := ReadU32(s.data, child.Body()); ok && child.Len() >= 4 {
				m.Flags = &v
			}
		case "TRAN":
			s.readTransform(child, &m.Transform)
		case "GEOM":
			m.Geometry = s.readGeometry(child)
		}
	}
	return m
}

func (s *session) readTransform(ref ChunkRef, t *Transform) {
	c := newCursor(s.data, ref)
	if v := c.vec3(); !c.short {
		t.Scale = v
	}
	if v := c.vec4(); !c.short {
		t.Rotation = v
	}
	if v := c.vec3(); !c.short {
		t.Translation = v
	}
}

func (s *session) readGeometry(ref ChunkRef) *Geometry {
	var g Geometry
	found := false
	for _, child := range Children(s.data, ref) {
		switch child.Tag {
		case "SEGM":
			g.Segments = append(g.Segments, s.readSegment(child))
			found = true
		case "CLTH":
			if g.Cloth != nil {
				s.log.Debug("ignoring additional cloth chunk", zap.Int("offset", child.Start))
				continue
			}
			g.Cloth = s.readCloth(child)
			found = true
		case "ENVL":
			g.Envelope = readU32List(newCursor(s.data, child))
			found = true
		}
	}
	if !found {
		return nil
	}
	return &g
}

func readU32List(c *cursor) []uint32 {
	n, capHint := c.count(4)
	if c.short {
		return nil
	}
	out := make([]uint32, 0, capHint)
	for i := 0; i < n; i++ {
		v := c.u32()
		if c.short {
			break
		}
		out = append(out, v)
	}
	return out
}

func readPairList(c *cursor) [][2]uint16 {
	n, capHint := c.count(4)
	if c.short {
		return nil
	}
	out := make([][2]uint16, 0, capHint)
	for i := 0; i < n; i++ {
		a, b := c.u16(), c.u16()
		if c.short {
			break
		}
		out = append(out, [2]uint16{a, b})
	}
	return out
}

func readVec3List(c *cursor) [][3]float32 {
	n, capHint := c.count(12)
	if c.short {
		return nil
	}
	out := make([][3]float32, 0, capHint)
	for i := 0; i < n; i++ {
		v := c.vec3()
		if c.short {
			break
		}
		out = append(out, v)
	}
	return out
}

func readVec2List(c *cursor) [][2]float32 {
	n, capHint := c.count(8)
	if c.short {
		return nil
	}
	out := make([][2]float32, 0, capHint)
	for i := 0; i < n; i++ {
		v := c.vec2()
		if c.short {
			break
		}
		out = append(out, v)
	}
	return out
}
