package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mediaPort "yatube/internal/ports/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestLocalStorage_SaveAndDeleteImage(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root)
	ctx := context.Background()

	rel, err := s.SaveImage(ctx, "small.gif", smallGIF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "posts/"))
	assert.True(t, strings.HasSuffix(rel, ".gif"))

	stored, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, smallGIF, stored)

	require.NoError(t, s.Delete(ctx, rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, rel), "deleting twice is fine")
}

func TestLocalStorage_RejectsNonImage(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	_, err := s.SaveImage(context.Background(), "evil.gif", []byte("just some text"))
	assert.ErrorIs(t, err, mediaPort.ErrNotImage)
}

func TestLocalStorage_RejectsSVG(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root)
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(document.cookie)</script></svg>`)

	_, err := s.SaveImage(context.Background(), "x.svg", svg)
	assert.ErrorIs(t, err, mediaPort.ErrNotImage)

	_, err = os.Stat(filepath.Join(root, "posts"))
	assert.True(t, os.IsNotExist(err), "nothing is written")
}

func TestLocalStorage_DeleteStaysInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "media")
	require.NoError(t, os.MkdirAll(root, 0o755))
	outside := filepath.Join(parent, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	require.NoError(t, NewLocalStorage(root).Delete(context.Background(), "../secret.txt"))
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
