package msh

import "strings"

// NormalizeTextureName returns the lookup key for a texture reference:
// lower-cased, with ".tga" appended when missing. Empty names stay empty.
func NormalizeTextureName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if !strings.HasSuffix(name, ".tga") {
		name += ".tga"
	}
	return name
}

// textureSet collects unique texture keys in first-seen order.
type textureSet struct {
	seen  map[string]struct{}
	names []string
}

func (t *textureSet) add(name string) string {
	key := NormalizeTextureName(name)
	if key == "" {
		return ""
	}
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[key]; !ok {
		t.seen[key] = struct{}{}
		t.names = append(t.names, key)
	}
	return key
}
