package texture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildIndex(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writeFile(t, filepath.Join(first, "Rock.TGA"), nil)
	writeFile(t, filepath.Join(first, "sub", "grass.tga"), nil)
	writeFile(t, filepath.Join(first, "readme.txt"), nil)
	writeFile(t, filepath.Join(second, "rock.tga"), nil)
	writeFile(t, filepath.Join(second, "sky.tga"), nil)

	idx := BuildIndex([]string{first, second, filepath.Join(first, "missing")}, nil)
	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"rock.tga", filepath.Join(first, "Rock.TGA"), true},
		{"ROCK", filepath.Join(first, "Rock.TGA"), true},
		{`textures\grass.tga`, filepath.Join(first, "sub", "grass.tga"), true},
		{"sky.tga", filepath.Join(second, "sky.tga"), true},
		{"readme.txt", "", false},
		{"lava.tga", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := idx.ResolvePath(tt.key)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, %v, want %q, %v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCache_Resolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "red.tga"), makeTGA(TGATypeUncompressed, 24, 0, 2, 2, []byte{0, 0, 255, 0, 0, 255, 0, 0, 255, 0, 0, 255}))
	writeFile(t, filepath.Join(dir, "broken.tga"), []byte("nope"))

	cache := NewCache(BuildIndex([]string{dir}, nil))

	img, err := cache.Resolve("RED.tga")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	again, _ := cache.Resolve("red.tga")
	if img != again {
		t.Error("second Resolve did not hit the cache")
	}

	if _, err := cache.Resolve("broken.tga"); err == nil {
		t.Error("expected decode error for broken texture")
	}
	if _, err := cache.Resolve("missing.tga"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing texture error = %v, want ErrNotFound", err)
	}
}
