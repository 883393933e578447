package attach

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Picker abstracts the platform asset picker. Implementations may return
// ErrPermissionDenied, which callers surface to the user directly.
type Picker interface {
	Pick(ctx context.Context, limit int) ([]Asset, error)
}

// DirPicker picks image files from a local directory. It backs the smoke
// tooling and tests; the mobile shell supplies the real media picker.
type DirPicker struct {
	Dir string
}

func (p DirPicker) Pick(ctx context.Context, limit int) ([]Asset, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		if os.IsPermission(err) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}

	var assets []Asset
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ct := mime.TypeByExtension(filepath.Ext(e.Name()))
		if !strings.HasPrefix(ct, "image/") {
			continue
		}
		assets = append(assets, Asset{
			URI:         filepath.Join(p.Dir, e.Name()),
			Name:        e.Name(),
			ContentType: ct,
		})
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	if limit > 0 && len(assets) > limit {
		assets = assets[:limit]
	}
	return assets, nil
}

// Reader resolves an asset's local URI to its bytes.
type Reader interface {
	ReadAsset(ctx context.Context, uri string) ([]byte, error)
}

// FileReader reads assets from the local filesystem.
type FileReader struct{}

func (FileReader) ReadAsset(ctx context.Context, uri string) ([]byte, error) {
	return os.ReadFile(uri)
}
