// Package upload persists the single image attached to a stock submission.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"
)

// Store writes an uploaded file and returns the public reference to it.
type Store interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

// fileName derives the stored name from the clock plus the original extension.
func fileName(t time.Time, original string) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + filepath.Ext(original)
}

// LocalStore keeps uploads in a directory served as static files.
type LocalStore struct {
	dir        string
	publicPath string
	now        func() time.Time
}

// NewLocalStore creates dir if it is missing and returns a store that
// answers references under publicPath.
func NewLocalStore(dir, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, publicPath: publicPath, now: time.Now}, nil
}

// Dir returns the directory uploads are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, name, err := s.create(fh.Filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}
	return path.Join(s.publicPath, name), nil
}

// create opens a fresh file; two uploads in the same millisecond move the
// later one forward a millisecond instead of overwriting.
func (s *LocalStore) create(original string) (*os.File, string, error) {
	t := s.now()
	for i := 0; i < 1000; i++ {
		name := fileName(t, original)
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create upload: %w", err)
		}
		t = t.Add(time.Millisecond)
	}
	return nil, "", fmt.Errorf("create upload: no free name for %q", original)
}
