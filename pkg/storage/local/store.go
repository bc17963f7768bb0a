package local

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/platefinder/platefinder-backend/pkg/config"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// ErrUnsupportedType is returned when the upload extension is not an accepted image format.
var ErrUnsupportedType = errors.New("unsupported file type")

// Store writes uploaded files under a single directory on local disk.
type Store struct {
	dir        string
	publicPath string
	maxBytes   int64
}

// New prepares the upload directory and returns a store bound to it.
func New(cfg config.UploadsConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("uploads directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	publicPath := cfg.PublicPath
	if publicPath == "" {
		publicPath = "/uploads"
	}
	return &Store{
		dir:        cfg.Dir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		maxBytes:   int64(cfg.MaxUploadMB) << 20,
	}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// PublicPath returns the URL prefix files are served under.
func (s *Store) PublicPath() string {
	return s.publicPath
}

// Save writes the reader's content under a random filename and returns the public URL path.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer func() { _ = dst.Close() }()

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	written, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("writing upload file: %w", err)
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("upload exceeds %d byte limit", s.maxBytes)
	}

	return path.Join(s.publicPath, name), nil
}

// Delete removes a previously saved file given its public URL path.
// Missing files are not an error.
func (s *Store) Delete(publicURL string) error {
	name := path.Base(publicURL)
	if name == "" || name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing upload file: %w", err)
	}
	return nil
}
