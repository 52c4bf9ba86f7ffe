package texture

import (
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Index maps lower-case texture file names to filesystem paths.
// Earlier search paths win over later ones.
type Index struct {
	entries map[string]string // name.lower() -> full path
}

// BuildIndex walks every search path for .tga files. Missing directories are
// logged and skipped.
func BuildIndex(searchPaths []string, log *zap.Logger) *Index {
	if log == nil {
		log = zap.NewNop()
	}
	idx := &Index{entries: make(map[string]string)}

	for _, dir := range searchPaths {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return err
				}
				return nil
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".tga") {
				return nil
			}
			key := strings.ToLower(d.Name())
			if _, exists := idx.entries[key]; !exists {
				idx.entries[key] = path
			}
			return nil
		})
		if err != nil {
			log.Warn("skipping texture search path", zap.String("path", dir), zap.Error(err))
		}
	}

	log.Debug("indexed textures", zap.Int("count", len(idx.entries)), zap.Strings("paths", searchPaths))
	return idx
}

// ResolvePath returns the filesystem path for a texture key, or ("", false).
// Keys may carry a directory prefix with either slash style.
func (idx *Index) ResolvePath(key string) (string, bool) {
	key = strings.ReplaceAll(key, "\\", "/")
	base := strings.ToLower(filepath.Base(key))
	if filepath.Ext(base) == "" {
		base += ".tga"
	}
	path, ok := idx.entries[base]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
