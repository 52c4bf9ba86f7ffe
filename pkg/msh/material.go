package msh

import "go.uber.org/zap"

// textureTags are the texture slots of a material, in slot order.
var textureTags = [4]string{"TX0D", "TX1D", "TX2D", "TX3D"}

// Texture slots.
const (
	TextureDiffuse = iota
	TextureDetail  // bump or normal map
	TextureSecondary
	TextureCubemap
)

// Material is one MATD entry. Colors are stored in file order (B, G, R, A).
type Material struct {
	Name       string
	Diffuse    [4]float32
	Specular   [4]float32
	Ambient    [4]float32
	Shininess  float32
	Attributes *Attributes

	// Normalized texture keys per slot; "" when the slot is empty.
	Textures [4]string
}

// ReadMaterials decodes the material table and returns it together with the
// texture keys it references. The result is empty if the file has no MATL.
func ReadMaterials(data []byte) ([]Material, []string) {
	s := newSession(data, nil)
	mats := s.readMaterials()
	return mats, s.textures.names
}

func (s *session) readMaterials() []Material {
	matl, ok := FindChunk(s.data, "MATL", 0, len(s.data))
	if !ok {
		return nil
	}

	declared, _ := ReadU32(s.data, matl.Body())
	var mats []Material
	for _, child := range Children(s.data, matl) {
		if child.Tag != "MATD" {
			continue
		}
		mats = append(mats, s.readMaterial(child))
	}

	if int(declared) != len(mats) {
		s.log.Debug("material count mismatch",
			zap.Uint32("declared", declared),
			zap.Int("found", len(mats)))
	}
	return mats
}

func (s *session) readMaterial(ref ChunkRef) Material {
	var m Material
	for _, child := range Children(s.data, ref) {
		switch child.Tag {
		case "NAME":
			m.Name = stringChunk(s.data, child)
		case "DATA":
			c := newCursor(s.data, child)
			m.Diffuse = c.vec4()
			m.Specular = c.vec4()
			m.Ambient = c.vec4()
			m.Shininess = c.f32()
		case "ATRB":
			c := newCursor(s.data, child)
			flags, render, d0, d1 := c.u8(), c.u8(), c.u8(), c.u8()
			if !c.short {
				m.Attributes = decodeAttributes(flags, render, d0, d1)
			}
		default:
			for slot, tag := range textureTags {
				if child.Tag == tag {
					m.Textures[slot] = s.textures.add(stringChunk(s.data, child))
				}
			}
		}
	}
	return m
}
