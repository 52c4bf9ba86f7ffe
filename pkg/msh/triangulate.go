package msh

// stripFlag marks the first two indices of each strip in a STRP stream.
const stripFlag = 0x8000

// SplitStrips splits a packed STRP index stream into individual strips. A strip
// begins at two consecutive flagged indices; the flag is cleared in the output.
func SplitStrips(indices []uint16) [][]uint16 {
	var strips [][]uint16
	var cur []uint16
	for i := 0; i < len(indices); i++ {
		if i+1 < len(indices) && indices[i]&stripFlag != 0 && indices[i+1]&stripFlag != 0 {
			if len(cur) > 0 {
				strips = append(strips, cur)
			}
			cur = []uint16{indices[i] &^ stripFlag, indices[i+1] &^ stripFlag}
			i++
			continue
		}
		cur = append(cur, indices[i]&^stripFlag)
	}
	if len(cur) > 0 {
		strips = append(strips, cur)
	}
	return strips
}

// StripToTriangles unrolls one triangle strip into a flat triangle list with
// counter-clockwise winding: odd triangles swap their last two indices.
// Degenerate triangles (a repeated index) are dropped.
func StripToTriangles(strip []uint16) []uint16 {
	if len(strip) < 3 {
		return nil
	}
	tris := make([]uint16, 0, (len(strip)-2)*3)
	for k := 0; k+2 < len(strip); k++ {
		a, b, c := strip[k], strip[k+1], strip[k+2]
		if a == b || b == c || a == c {
			continue
		}
		if k%2 == 0 {
			tris = append(tris, a, b, c)
		} else {
			tris = append(tris, a, c, b)
		}
	}
	return tris
}

// FanTriangulate splits an n-gon into n-2 triangles sharing its first vertex.
func FanTriangulate(poly []uint16) []uint16 {
	if len(poly) < 3 {
		return nil
	}
	tris := make([]uint16, 0, (len(poly)-2)*3)
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, poly[0], poly[i], poly[i+1])
	}
	return tris
}
