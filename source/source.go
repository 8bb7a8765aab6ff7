// Package source reads and writes seed files on local disk or in Cloud Storage.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// GCSScheme prefixes paths served from Cloud Storage.
const GCSScheme = "gs://"

var errNoGCSClient = errors.New("no Cloud Storage client configured")

// Source gives access to seed files.
type Source interface {
	Exists(ctx context.Context, path string) (bool, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
}

// IsGCS reports whether path is a gs:// object path.
func IsGCS(path string) bool {
	return strings.HasPrefix(path, GCSScheme)
}

// Join resolves name against dir, keeping gs:// paths slash-separated.
func Join(dir, name string) string {
	if dir == "" {
		return name
	}
	if IsGCS(dir) {
		return strings.TrimRight(dir, "/") + "/" + strings.TrimLeft(name, "/")
	}
	return filepath.Join(dir, name)
}

// Router sends gs:// paths to the GCS source and everything else to the local one.
type Router struct {
	local Source
	gcs   Source
}

// NewRouter creates a Router. gcs may be nil when no bucket is used.
func NewRouter(local, gcs Source) *Router {
	return &Router{local: local, gcs: gcs}
}

func (r *Router) pick(path string) (Source, error) {
	if IsGCS(path) {
		if r.gcs == nil {
			return nil, fmt.Errorf("%w for %s", errNoGCSClient, path)
		}
		return r.gcs, nil
	}
	return r.local, nil
}

// Exists reports whether path exists.
func (r *Router) Exists(ctx context.Context, path string) (bool, error) {
	src, err := r.pick(path)
	if err != nil {
		return false, err
	}
	return src.Exists(ctx, path)
}

// ReadFile returns the content of path.
func (r *Router) ReadFile(ctx context.Context, path string) ([]byte, error) {
	src, err := r.pick(path)
	if err != nil {
		return nil, err
	}
	return src.ReadFile(ctx, path)
}

// WriteFile replaces the content of path.
func (r *Router) WriteFile(ctx context.Context, path string, data []byte) error {
	src, err := r.pick(path)
	if err != nil {
		return err
	}
	return src.WriteFile(ctx, path, data)
}
