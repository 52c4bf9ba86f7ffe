package msh

// SceneInfo holds the global scene metadata from the SINF chunk.
type SceneInfo struct {
	Name       string
	FrameStart int32
	FrameEnd   int32
	FPS        float32

	// Bounding volume
	Rotation [4]float32 // x, y, z, w
	Center   [3]float32
	Extents  [3]float32
	Radius   float32
}

// sinfOffsets are where SINF normally sits: after HEDR+MSH2, or after MSH2 alone.
var sinfOffsets = []int{16, 8}

func defaultSceneInfo() *SceneInfo {
	return &SceneInfo{
		FrameEnd: 100,
		FPS:      30,
		Rotation: [4]float32{0, 0, 0, 1},
	}
}

// ReadSceneInfo decodes the SINF chunk. Returns nil if the file has none.
func ReadSceneInfo(data []byte) *SceneInfo {
	return newSession(data, nil).readSceneInfo()
}

func (s *session) readSceneInfo() *SceneInfo {
	ref, ok := s.locateSceneInfo()
	if !ok {
		return nil
	}

	info := defaultSceneInfo()
	for _, child := range Children(s.data, ref) {
		switch child.Tag {
		case "NAME":
			info.Name = stringChunk(s.data, child)
		case "FRAM":
			c := newCursor(s.data, child)
			if v := c.i32(); !c.short {
				info.FrameStart = v
			}
			if v := c.i32(); !c.short {
				info.FrameEnd = v
			}
			if v := c.f32(); !c.short {
				info.FPS = v
			}
		case "BBOX":
			c := newCursor(s.data, child)
			if v := c.vec4(); !c.short {
				info.Rotation = v
			}
			if v := c.vec3(); !c.short {
				info.Center = v
			}
			if v := c.vec3(); !c.short {
				info.Extents = v
			}
			if v := c.f32(); !c.short {
				info.Radius = v
			}
		}
	}
	return info
}

func (s *session) locateSceneInfo() (ChunkRef, bool) {
	for _, off := range sinfOffsets {
		if ref, ok := chunkAt(s.data, off); ok && ref.Tag == "SINF" {
			return ref, true
		}
	}
	return FindChunk(s.data, "SINF", 0, len(s.data))
}
