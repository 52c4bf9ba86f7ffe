package texture

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// Thumbnail scales img so its longest edge is size pixels, keeping the aspect
// ratio. Images already small enough are copied unscaled.
func Thumbnail(img image.Image, size int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > size || h > size {
		if w >= h {
			w, h = size, max(1, h*size/w)
		} else {
			w, h = max(1, w*size/h), size
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WriteWebP encodes img as lossless WebP.
func WriteWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}

// ExportConfig holds the settings of a thumbnail export run.
type ExportConfig struct {
	OutputDir string
	Size      int
	Workers   int // defaults to GOMAXPROCS
	Resolver  Resolver
	Log       *zap.Logger
}

// Result holds the outcome of exporting one texture.
type Result struct {
	Key     string
	Path    string // written file, empty on failure
	Success bool
	Error   string
}

// Export writes a WebP thumbnail for every key using a worker pool. Results are
// in key order. Keys sharing a base name get numbered output files so no two
// workers write the same path.
func Export(cfg ExportConfig, keys []string) ([]Result, error) {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	names := outputNames(keys)
	results := make([]Result, len(keys))
	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = exportOne(cfg, keys[i], names[i])
			}
		}()
	}

	for i := range keys {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// outputNames maps each key to a distinct "<stem>.webp", comparing stems
// case-insensitively. Repeats become "<stem>_2.webp", "<stem>_3.webp", ...
func outputNames(keys []string) []string {
	names := make([]string, len(keys))
	used := make(map[string]bool, len(keys))
	for i, key := range keys {
		base := filepath.Base(strings.ReplaceAll(key, "\\", "/"))
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		name := stem + ".webp"
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s_%d.webp", stem, n)
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func exportOne(cfg ExportConfig, key, name string) Result {
	res := Result{Key: key}

	img, err := cfg.Resolver.Resolve(key)
	if err != nil {
		res.Error = err.Error()
		cfg.Log.Warn("texture unavailable", zap.String("texture", key), zap.Error(err))
		return res
	}

	outPath := filepath.Join(cfg.OutputDir, name)

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if err := WriteWebP(f, Thumbnail(img, cfg.Size)); err != nil {
		f.Close()
		res.Error = err.Error()
		return res
	}
	if err := f.Close(); err != nil {
		res.Error = fmt.Sprintf("closing %s: %v", outPath, err)
		return res
	}

	cfg.Log.Debug("exported thumbnail", zap.String("texture", key), zap.String("path", outPath))
	res.Path = outPath
	res.Success = true
	return res
}
