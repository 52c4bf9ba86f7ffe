package math

import (
	"math"
	"testing"
)

// quarterTurnY rotates 90 degrees about +Y.
var quarterTurnY = Quat{Y: float32(math.Sin(math.Pi / 4)), W: float32(math.Cos(math.Pi / 4))}

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := FromRotationTranslation(quarterTurnY, Vec3{1, 2, 3})
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * M = %v, want %v", got, m)
	}
}

func TestMulOrder(t *testing.T) {
	parent := FromRotationTranslation(quarterTurnY, Vec3{})
	child := FromRotationTranslation(QuatIdentity(), Vec3{X: 1})

	// The child offset is rotated by the parent: +X becomes -Z.
	got := parent.Mul(child).Translation()
	want := Vec3{0, 0, -1}
	if !near(got, want) {
		t.Errorf("(parent * child).Translation() = %v, want %v", got, want)
	}
}

func TestTransformPoint(t *testing.T) {
	m := FromRotationTranslation(QuatIdentity(), Vec3{10, 20, 30})
	if got := m.TransformPoint(Vec3{1, 2, 3}); got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformPoint = %v, want {11 22 33}", got)
	}
}

func TestFromRotationTranslation(t *testing.T) {
	m := FromRotationTranslation(quarterTurnY, Vec3{Y: 5})

	// (1,0,0) rotated 90 degrees about Y is (0,0,-1), then lifted by 5.
	got := m.TransformPoint(Vec3{X: 1})
	if want := (Vec3{0, 5, -1}); !near(got, want) {
		t.Fatalf("FromRotationTranslation: got %v, want %v", got, want)
	}
}

func TestInverseRigid(t *testing.T) {
	q := Quat{X: 0.3, Y: -0.2, Z: 0.5, W: 0.8}
	m := FromRotationTranslation(q, Vec3{3, -2, 8})
	result := m.Mul(m.InverseRigid())

	id := Identity()
	for i := 0; i < 16; i++ {
		if abs(result[i]-id[i]) > 0.0001 {
			t.Errorf("M * M^-1 element %d: got %v, want %v", i, result[i], id[i])
		}
	}

	p := Vec3{4, 5, 6}
	if back := m.InverseRigid().TransformPoint(m.TransformPoint(p)); !near(back, p) {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func near(a, b Vec3) bool {
	return abs(a.X-b.X) < 0.0001 && abs(a.Y-b.Y) < 0.0001 && abs(a.Z-b.Z) < 0.0001
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
