package msh

import "go.uber.org/zap"

// Segment is one material-homogeneous piece of a model's mesh (SEGM).
type Segment struct {
	Material  int
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Colors    [][4]uint8 // per-vertex, B G R A
	FlatColor *[4]uint8  // whole-segment color, B G R A

	// Triangles holds three indices per triangle, merged from every index
	// encoding present in the segment.
	Triangles []uint16

	// Weights holds per-vertex skin influences. Bone values index the model's
	// envelope, not the model list.
	Weights []VertexWeights
}

// VertexWeights is up to four bone influences of one vertex.
type VertexWeights struct {
	Bones   [4]uint32
	Weights [4]float32
}

// TriangleCount returns the number of complete triangles.
func (seg *Segment) TriangleCount() int {
	return len(seg.Triangles) / 3
}

func (s *session) readSegment(ref ChunkRef) Segment {
	seg := Segment{}
	for _, child := range Children(s.data, ref) {
		c := newCursor(s.data, child)
		switch child.Tag {
		case "MATI":
			if v := c.u32(); !c.short {
				seg.Material = int(v)
			}
		case "POSL":
			seg.Positions = readVec3List(c)
			if c.short {
				s.log.Debug("short position list",
					zap.Int("offset", child.Start),
					zap.Int("read", len(seg.Positions)))
			}
		case "NRML":
			seg.Normals = readVec3List(c)
		case "UV0L":
			seg.UVs = readVec2List(c)
		case "CLRL":
			seg.Colors = readColorList(c)
		case "CLRB":
			if v := c.bytes4(); !c.short {
				seg.FlatColor = &v
			}
		case "NDXT":
			seg.Triangles = appendIndices(seg.Triangles, readTriangleList(c))
		case "STRP":
			for _, strip := range SplitStrips(readU16List(c)) {
				seg.Triangles = appendIndices(seg.Triangles, StripToTriangles(strip))
			}
		case "NDXL":
			for _, poly := range readPolygonList(c) {
				seg.Triangles = appendIndices(seg.Triangles, FanTriangulate(poly))
			}
		case "WGHT":
			seg.Weights = readWeights(c)
		}
	}
	return seg
}

// appendIndices keeps Triangles nil until some encoding produced data, so a
// segment without index chunks is distinguishable from one with zero triangles.
func appendIndices(dst, src []uint16) []uint16 {
	if dst == nil {
		dst = make([]uint16, 0, len(src))
	}
	return append(dst, src...)
}

func readTriangleList(c *cursor) []uint16 {
	n, capHint := c.count(6)
	if c.short {
		return nil
	}
	out := make([]uint16, 0, capHint*3)
	for i := 0; i < n; i++ {
		a, b, d := c.u16(), c.u16(), c.u16()
		if c.short {
			break
		}
		out = append(out, a, b, d)
	}
	return out
}

func readU16List(c *cursor) []uint16 {
	n, capHint := c.count(2)
	if c.short {
		return nil
	}
	out := make([]uint16, 0, capHint)
	for i := 0; i < n; i++ {
		v := c.u16()
		if c.short {
			break
		}
		out = append(out, v)
	}
	return out
}

func readPolygonList(c *cursor) [][]uint16 {
	n, capHint := c.count(2)
	if c.short {
		return nil
	}
	polys := make([][]uint16, 0, capHint)
	for i := 0; i < n; i++ {
		k := int(c.u16())
		if c.short {
			break
		}
		poly := make([]uint16, 0, min(k, c.remaining()/2))
		for j := 0; j < k; j++ {
			v := c.u16()
			if c.short {
				break
			}
			poly = append(poly, v)
		}
		if c.short {
			break
		}
		polys = append(polys, poly)
	}
	return polys
}

func readColorList(c *cursor) [][4]uint8 {
	n, capHint := c.count(4)
	if c.short {
		return nil
	}
	out := make([][4]uint8, 0, capHint)
	for i := 0; i < n; i++ {
		v := c.bytes4()
		if c.short {
			break
		}
		out = append(out, v)
	}
	return out
}

func readWeights(c *cursor) []VertexWeights {
	n, capHint := c.count(32)
	if c.short {
		return nil
	}
	out := make([]VertexWeights, 0, capHint)
	for i := 0; i < n; i++ {
		var w VertexWeights
		for k := 0; k < 4; k++ {
			w.Bones[k] = c.u32()
			w.Weights[k] = c.f32()
		}
		if c.short {
			break
		}
		out = append(out, w)
	}
	return out
}
