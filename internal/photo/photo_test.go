package photo_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesolver12/weight-loss-tracker/internal/photo"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIngestStoresPNG(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	data := pngBytes(t)

	ref, err := photo.Ingest(bytes.NewReader(data), dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".png"))

	path, err := photo.Path(dir, ref)
	require.NoError(t, err)
	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestIngestFileUsesFreshNames(t *testing.T) {
	t.Parallel()
	src := filepath.Join(t.TempDir(), "meal.png")
	require.NoError(t, os.WriteFile(src, pngBytes(t), 0o644))
	dir := t.TempDir()

	a, err := photo.IngestFile(src, dir)
	require.NoError(t, err)
	b, err := photo.IngestFile(src, dir)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestIngestRejectsNonImage(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := photo.Ingest(strings.NewReader("just some text"), dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, photo.ErrUnsupportedType))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPathRejectsTraversal(t *testing.T) {
	t.Parallel()
	for _, ref := range []string{"", "../etc/passwd", "a/b.png", ".hidden"} {
		_, err := photo.Path("/photos", ref)
		assert.ErrorIs(t, err, photo.ErrInvalidRef, ref)
	}
}
