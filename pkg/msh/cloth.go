package msh

// Cloth is the CLTH record of a model: a simulated mesh kept apart from the
// segment data.
type Cloth struct {
	Texture   string // normalized texture key
	Positions [][3]float32
	UVs       [][2]float32
	Triangles [][3]uint32

	// FixedPoints are vertex indices pinned to the bone named at the same
	// position in FixedWeights.
	FixedPoints  []uint32
	FixedWeights []string

	// Constraint vertex pairs.
	Stretch [][2]uint16
	Cross   [][2]uint16
	Bend    [][2]uint16
}

func (s *session) readCloth(ref ChunkRef) *Cloth {
	cl := &Cloth{}
	for _, child := range Children(s.data, ref) {
		c := newCursor(s.data, child)
		switch child.Tag {
		case "CTEX":
			cl.Texture = s.textures.add(stringChunk(s.data, child))
		case "CPOS":
			cl.Positions = readVec3List(c)
		case "CUV0":
			cl.UVs = readVec2List(c)
		case "FIDX":
			cl.FixedPoints = readU32List(c)
		case "FWGT":
			cl.FixedWeights = readStringList(c)
		case "CMSH":
			cl.Triangles = readU32Triangles(c)
		case "SPRS":
			cl.Stretch = readPairList(c)
		case "CPRS":
			cl.Cross = readPairList(c)
		case "BPRS":
			cl.Bend = readPairList(c)
		}
	}
	return cl
}

func readStringList(c *cursor) []string {
	n, capHint := c.count(1)
	if c.short {
		return nil
	}
	out := make([]string, 0, capHint)
	for i := 0; i < n; i++ {
		s := c.cstring()
		if c.short {
			break
		}
		out = append(out, s)
	}
	return out
}

func readU32Triangles(c *cursor) [][3]uint32 {
	n, capHint := c.count(12)
	if c.short {
		return nil
	}
	out := make([][3]uint32, 0, capHint)
	for i := 0; i < n; i++ {
		tri := [3]uint32{c.u32(), c.u32(), c.u32()}
		if c.short {
			break
		}
		out = append(out, tri)
	}
	return out
}
