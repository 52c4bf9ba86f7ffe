package msh

import (
	"fmt"

	"go.uber.org/zap"
)

// Mesh is a model's segments merged into one set of vertex buffers.
// Optional attributes are nil unless at least one segment carries them; when
// present they have one entry per position, padded for segments that lack them.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Colors    [][4]uint8 // B G R A
	Indices   []uint32
	Groups    []Group

	// Skin holds per-vertex influences whose Bones are model indices (MNDX).
	// A slot with zero weight is unused: its Bones entry is 0 and does not
	// refer to the model with MNDX 0.
	Skin []VertexWeights
}

// Group is the index range drawn with one material.
type Group struct {
	Start    int // first index in Indices
	Count    int // number of indices
	Material int
}

// VertexCount returns the number of merged vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

var white = [4]uint8{255, 255, 255, 255}

// buildMesh merges the segments of a model and remaps skin envelope indices
// to model indices.
func (s *session) buildMesh(m *Model, materialCount int) *Mesh {
	g := m.Geometry
	if g == nil || len(g.Segments) == 0 {
		return nil
	}

	var hasNormals, hasUVs, hasColors, hasWeights bool
	total := 0
	for i := range g.Segments {
		seg := &g.Segments[i]
		total += len(seg.Positions)
		hasNormals = hasNormals || seg.Normals != nil
		hasUVs = hasUVs || seg.UVs != nil
		hasColors = hasColors || seg.Colors != nil || seg.FlatColor != nil
		hasWeights = hasWeights || seg.Weights != nil
	}

	mesh := &Mesh{Positions: make([][3]float32, 0, total)}
	if hasNormals {
		mesh.Normals = make([][3]float32, 0, total)
	}
	if hasUVs {
		mesh.UVs = make([][2]float32, 0, total)
	}
	if hasColors {
		mesh.Colors = make([][4]uint8, 0, total)
	}
	if hasWeights {
		mesh.Skin = make([]VertexWeights, 0, total)
	}

	for i := range g.Segments {
		seg := &g.Segments[i]
		base := len(mesh.Positions)
		n := len(seg.Positions)
		bad := 0

		if seg.Material < 0 || seg.Material >= materialCount {
			s.report(IssueMaterialRange, m.Name,
				fmt.Sprintf("segment %d uses material %d of %d", i, seg.Material, materialCount),
				zap.Int("segment", i), zap.Int("material", seg.Material))
		}

		mesh.Positions = append(mesh.Positions, seg.Positions...)
		for v := 0; v < n; v++ {
			if hasNormals {
				mesh.Normals = append(mesh.Normals, at(seg.Normals, v))
			}
			if hasUVs {
				mesh.UVs = append(mesh.UVs, at(seg.UVs, v))
			}
			if hasColors {
				mesh.Colors = append(mesh.Colors, segmentColor(seg, v))
			}
			if hasWeights {
				w, dropped := remapWeights(g.Envelope, at(seg.Weights, v))
				mesh.Skin = append(mesh.Skin, w)
				bad += dropped
			}
		}

		if bad > 0 {
			s.report(IssueEnvelopeRange, m.Name,
				fmt.Sprintf("segment %d: %d influences point outside the %d-entry envelope", i, bad, len(g.Envelope)),
				zap.Int("segment", i), zap.Int("influences", bad))
		}

		start := len(mesh.Indices)
		dropped := 0
		for t := 0; t+3 <= len(seg.Triangles); t += 3 {
			tri := seg.Triangles[t : t+3]
			if int(tri[0]) >= n || int(tri[1]) >= n || int(tri[2]) >= n {
				dropped++
				continue
			}
			mesh.Indices = append(mesh.Indices,
				uint32(base)+uint32(tri[0]), uint32(base)+uint32(tri[1]), uint32(base)+uint32(tri[2]))
		}
		if dropped > 0 {
			s.report(IssueVertexRange, m.Name,
				fmt.Sprintf("segment %d: dropped %d triangles indexing past its %d vertices", i, dropped, n),
				zap.Int("segment", i), zap.Int("triangles", dropped))
		}
		mesh.Groups = append(mesh.Groups, Group{
			Start:    start,
			Count:    len(mesh.Indices) - start,
			Material: seg.Material,
		})
	}
	return mesh
}

func at[T any](list []T, i int) T {
	var zero T
	if i < len(list) {
		return list[i]
	}
	return zero
}

func segmentColor(seg *Segment, v int) [4]uint8 {
	if v < len(seg.Colors) {
		return seg.Colors[v]
	}
	if seg.FlatColor != nil {
		return *seg.FlatColor
	}
	return white
}

// remapWeights replaces envelope positions with the model indices they name.
// Unweighted slots are cleared. Influences pointing outside the envelope are
// zeroed and counted.
func remapWeights(env []uint32, w VertexWeights) (VertexWeights, int) {
	out := w
	dropped := 0
	for k := 0; k < 4; k++ {
		if w.Weights[k] == 0 {
			out.Bones[k] = 0
			continue
		}
		if int(w.Bones[k]) >= len(env) {
			dropped++
			out.Bones[k], out.Weights[k] = 0, 0
			continue
		}
		out.Bones[k] = env[w.Bones[k]]
	}
	return out, dropped
}
