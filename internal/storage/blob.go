package storage

import (
	"context"
	"io"
)

// BlobStore holds rendered papers and other downloadable artifacts.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error) // returns canonical key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	URL(key string) (string, error) // fs returns "file://..."
}
