package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	mediaPort "yatube/internal/ports/media"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofrs/uuid"
)

const imageDir = "posts"

// rasterTypes are the only uploads accepted as images. SVG is a document
// that can carry scripts and is never stored.
var rasterTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp"}

// LocalStorage writes uploads below Root. Returned paths are relative to it
// and use forward slashes, ready to be served under /media/.
type LocalStorage struct {
	Root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{Root: root}
}

// SaveImage sniffs the content, not the file name, and refuses anything that
// is not a raster image.
func (s *LocalStorage) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), rasterTypes...) {
		return "", mediaPort.ErrNotImage
	}

	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	ext := mt.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	rel := path.Join(imageDir, id.String()+ext)

	dir := filepath.Join(s.Root, imageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Root, filepath.FromSlash(rel)), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return rel, nil
}

// Delete removes a stored file; a missing file is not an error.
func (s *LocalStorage) Delete(_ context.Context, rel string) error {
	clean := path.Clean("/" + rel)
	if clean == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
