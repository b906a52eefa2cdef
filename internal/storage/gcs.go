package storage

import (
	"context"
	"fmt"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCS stages payloads in a Google Cloud Storage bucket.
type GCS struct {
	client *gcs.Client
	bucket string
	prefix string
}

// NewGCS creates a GCS stager. Objects are written under prefix with
// random names so concurrent analyses never collide.
func NewGCS(ctx context.Context, bucket, prefix string) (*GCS, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCS{client: c, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

// Upload writes data to a new object and returns its gs:// URI.
func (g *GCS) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	name := uuid.NewString()
	if g.prefix != "" {
		name = g.prefix + "/" + name
	}

	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("stage upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	return fmt.Sprintf("gs://%s/%s", g.bucket, name), nil
}

// Delete removes a staged object by its gs:// URI.
func (g *GCS) Delete(ctx context.Context, uri string) error {
	bucket, object, err := parseGSURI(uri)
	if err != nil {
		return err
	}
	return g.client.Bucket(bucket).Object(object).Delete(ctx)
}

// Close releases the underlying client.
func (g *GCS) Close() error { return g.client.Close() }

func parseGSURI(uri string) (bucket, object string, err error) {
	trimmed, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("not a gs:// uri: %q", uri)
	}
	bucket, object, ok = strings.Cut(trimmed, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("malformed gs:// uri: %q", uri)
	}
	return bucket, object, nil
}
