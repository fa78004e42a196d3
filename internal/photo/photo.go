// Package photo stores meal photos attached to food entries. Photos are kept
// as opaque files; nothing inspects their content beyond the image type.
package photo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxBytes bounds an uploaded photo.
const MaxBytes = 10 << 20

var (
	ErrUnsupportedType = errors.New("unsupported photo type")
	ErrTooLarge        = errors.New("photo too large")
	ErrInvalidRef      = errors.New("invalid photo reference")
)

var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Ingest validates that src is a JPEG or PNG image, writes it under dir with
// a fresh name and returns that name as the reference.
func Ingest(src io.Reader, dir string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(src, MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if len(data) > MaxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, MaxBytes)
	}
	mt := mimetype.Detect(data)
	ext, ok := allowed[mt.String()]
	if !ok {
		return "", fmt.Errorf("%w: %s (use jpeg or png)", ErrUnsupportedType, mt.String())
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create photo directory: %w", err)
	}
	ref := uuid.NewString() + ext
	dst, err := os.OpenFile(filepath.Join(dir, ref), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("close photo: %w", err)
	}
	return ref, nil
}

// IngestFile is Ingest for a photo already on disk.
func IngestFile(path, dir string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()
	return Ingest(f, dir)
}

// Path resolves a reference returned by Ingest to its file under dir.
func Path(dir, ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return filepath.Join(dir, ref), nil
}
