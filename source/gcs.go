package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS reads seed files from Cloud Storage objects addressed as gs://bucket/object.
type GCS struct {
	client *gcs.Client
}

// NewGCS creates a Cloud Storage client with opts.
func NewGCS(ctx context.Context, opts ...option.ClientOption) (*GCS, error) {
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient failed: %w", err)
	}
	return &GCS{client: client}, nil
}

// Close closes the client.
func (g *GCS) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

// ParseGCSPath splits gs://bucket/object into its bucket and object names.
func ParseGCSPath(path string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(path, GCSScheme)
	if !ok {
		return "", "", fmt.Errorf("not a %s path: %q", GCSScheme, path)
	}
	bucket, object, _ = strings.Cut(rest, "/")
	bucket = strings.TrimSpace(bucket)
	object = strings.TrimLeft(object, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("invalid bucket or object in %q", path)
	}
	return bucket, object, nil
}

func (g *GCS) object(path string) (*gcs.ObjectHandle, error) {
	if g == nil || g.client == nil {
		return nil, errNoGCSClient
	}
	bucket, object, err := ParseGCSPath(path)
	if err != nil {
		return nil, err
	}
	return g.client.Bucket(bucket).Object(object), nil
}

// Exists reports whether the object exists.
func (g *GCS) Exists(ctx context.Context, path string) (bool, error) {
	obj, err := g.object(path)
	if err != nil {
		return false, err
	}
	_, err = obj.Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read attrs of %s: %w", path, err)
	}
	return true, nil
}

// ReadFile downloads the object.
func (g *GCS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	obj, err := g.object(path)
	if err != nil {
		return nil, err
	}
	r, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile uploads data as a JSON object.
func (g *GCS) WriteFile(ctx context.Context, path string, data []byte) error {
	obj, err := g.object(path)
	if err != nil {
		return err
	}
	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return nil
}
