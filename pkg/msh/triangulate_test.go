package msh

import (
	"reflect"
	"testing"
)

func TestStripToTriangles(t *testing.T) {
	tests := []struct {
		name  string
		strip []uint16
		want  []uint16
	}{
		{"single", []uint16{0, 1, 2}, []uint16{0, 1, 2}},
		{"odd parity swaps", []uint16{0, 1, 2, 3}, []uint16{0, 1, 2, 1, 3, 2}},
		{"five", []uint16{0, 1, 2, 3, 4}, []uint16{0, 1, 2, 1, 3, 2, 2, 3, 4}},
		{"degenerate dropped", []uint16{0, 1, 1, 2, 3}, []uint16{1, 2, 3}},
		{"too short", []uint16{0, 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripToTriangles(tt.strip)
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("StripToTriangles(%v) = %v, want %v", tt.strip, got, tt.want)
			}
		})
	}
}

func TestSplitStrips(t *testing.T) {
	f := func(v uint16) uint16 { return v | stripFlag }

	tests := []struct {
		name    string
		indices []uint16
		want    [][]uint16
	}{
		{
			name:    "two strips",
			indices: []uint16{f(0), f(1), 2, 3, f(4), f(5), 6},
			want:    [][]uint16{{0, 1, 2, 3}, {4, 5, 6}},
		},
		{
			name:    "unflagged stream",
			indices: []uint16{0, 1, 2},
			want:    [][]uint16{{0, 1, 2}},
		},
		{
			name:    "single flag does not split",
			indices: []uint16{f(0), f(1), 2, f(3), 4},
			want:    [][]uint16{{0, 1, 2, 3, 4}},
		},
		{
			name:    "empty",
			indices: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitStrips(tt.indices)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitStrips(%v) = %v, want %v", tt.indices, got, tt.want)
			}
		})
	}
}

func TestFanTriangulate(t *testing.T) {
	tests := []struct {
		name string
		poly []uint16
		want []uint16
	}{
		{"triangle", []uint16{0, 1, 2}, []uint16{0, 1, 2}},
		{"quad", []uint16{0, 1, 2, 3}, []uint16{0, 1, 2, 0, 2, 3}},
		{"pentagon", []uint16{0, 1, 2, 3, 4}, []uint16{0, 1, 2, 0, 2, 3, 0, 3, 4}},
		{"line", []uint16{0, 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FanTriangulate(tt.poly)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FanTriangulate(%v) = %v, want %v", tt.poly, got, tt.want)
			}
		})
	}
}
