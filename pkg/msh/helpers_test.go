package msh

import (
	"bytes"
	"encoding/binary"
	"math"
)

// chunk builds tag | u32 length | payload from the concatenated parts.
func chunk(tag string, parts ...[]byte) []byte {
	body := bytes.Join(parts, nil)
	out := make([]byte, 8, 8+len(body))
	copy(out, tag)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	return append(out, body...)
}

func u16s(vs ...uint16) []byte {
	out := make([]byte, 2*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint16(out[2*i:], v)
	}
	return out
}

func u32s(vs ...uint32) []byte {
	out := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	return out
}

func i32s(vs ...int32) []byte {
	out := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

func f32s(vs ...float32) []byte {
	out := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// str returns s NUL-terminated and padded to a multiple of four bytes.
func str(s string) []byte {
	n := (len(s) + 4) &^ 3
	out := make([]byte, n)
	copy(out, s)
	return out
}

// fixed returns s NUL-padded to n bytes.
func fixed(s string, n int) []byte {
	out := make([]byte, n)
	copy(out, s)
	return out
}

func msh(sections ...[]byte) []byte {
	return chunk("HEDR", chunk("MSH2", sections...))
}

func sinf(name string, start, end int32, fps float32) []byte {
	return chunk("SINF",
		chunk("NAME", str(name)),
		chunk("FRAM", i32s(start, end), f32s(fps)),
		chunk("BBOX", f32s(0, 0, 0, 1), f32s(1, 2, 3), f32s(4, 5, 6), f32s(7)),
	)
}

func matl(mats ...[]byte) []byte {
	return chunk("MATL", u32s(uint32(len(mats))), bytes.Join(mats, nil))
}

func matd(name string, extra ...[]byte) []byte {
	parts := [][]byte{
		chunk("NAME", str(name)),
		chunk("DATA", f32s(1, 1, 1, 1), f32s(0.5, 0.5, 0.5, 1), f32s(0, 0, 0, 1), f32s(10)),
	}
	return chunk("MATD", append(parts, extra...)...)
}

func modl(name string, mndx uint32, extra ...[]byte) []byte {
	parts := [][]byte{
		chunk("MTYP", u32s(uint32(ModelStatic))),
		chunk("MNDX", u32s(mndx)),
		chunk("NAME", str(name)),
	}
	return chunk("MODL", append(parts, extra...)...)
}

func tran(translation ...float32) []byte {
	return chunk("TRAN", f32s(1, 1, 1), f32s(0, 0, 0, 1), f32s(translation...))
}

func posl(vs ...[3]float32) []byte {
	out := u32s(uint32(len(vs)))
	for _, v := range vs {
		out = append(out, f32s(v[0], v[1], v[2])...)
	}
	return chunk("POSL", out)
}

func ndxt(idx ...uint16) []byte {
	return chunk("NDXT", u32s(uint32(len(idx)/3)), u16s(idx...))
}

func wght(ws ...VertexWeights) []byte {
	out := u32s(uint32(len(ws)))
	for _, w := range ws {
		for k := 0; k < 4; k++ {
			out = append(out, u32s(w.Bones[k])...)
			out = append(out, f32s(w.Weights[k])...)
		}
	}
	return chunk("WGHT", out)
}

func triangleSegment(material uint32) []byte {
	return chunk("SEGM",
		chunk("MATI", u32s(material)),
		posl([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}),
		ndxt(0, 1, 2),
	)
}

// minimalMSH is a scene "Test" (frames 0-30 at 30 fps) with one material and
// one model holding a single triangle.
func minimalMSH() []byte {
	return msh(
		sinf("Test", 0, 30, 30),
		matl(matd("mat0", chunk("TX0D", str("Diffuse")))),
		modl("Box", 0, tran(0, 0, 0), chunk("GEOM", triangleSegment(0))),
	)
}

func hasIssue(issues []Issue, kind IssueKind) bool {
	for _, i := range issues {
		if i.Kind == kind {
			return true
		}
	}
	return false
}
