package math

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromRotationTranslation builds T * R.
func FromRotationTranslation(r Quat, t Vec3) Mat4 {
	m := r.ToMat4()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// TransformPoint applies m to a point. m must be affine.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// InverseRigid inverts a matrix made only of rotation and translation:
// the rotation block is transposed and the translation rotated back.
func (m Mat4) InverseRigid() Mat4 {
	var inv Mat4
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			inv[col*4+row] = m[row*4+col]
		}
	}
	t := m.Translation()
	inv[12] = -(inv[0]*t.X + inv[4]*t.Y + inv[8]*t.Z)
	inv[13] = -(inv[1]*t.X + inv[5]*t.Y + inv[9]*t.Z)
	inv[14] = -(inv[2]*t.X + inv[6]*t.Y + inv[10]*t.Z)
	inv[15] = 1
	return inv
}
