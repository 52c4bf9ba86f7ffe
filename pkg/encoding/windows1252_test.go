package encoding

import (
	"bytes"
	"testing"
)

func TestDecodeName(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"ascii", []byte("bone_root"), "bone_root"},
		{"nul terminated", []byte("hp_fire\x00\x00\x00"), "hp_fire"},
		{"garbage after nul", []byte("root\x00xyz"), "root"},
		{"latin1 e acute", []byte{'c', 'a', 'f', 0xE9}, "café"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeName(tt.data); got != tt.want {
				t.Errorf("DecodeName(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestEncodeNameRoundTrip(t *testing.T) {
	raw := []byte{'b', 'o', 'n', 'e', '_', 0xE9, 0xFC}
	got := EncodeName(DecodeName(raw))
	if !bytes.Equal(got, raw) {
		t.Errorf("round trip = %v, want %v", got, raw)
	}
}
