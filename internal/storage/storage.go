package storage

import (
	"context"
	"io"
)

// Object describes a stored file. Path is the store-internal key used for
// removal; URL is what clients can fetch.
type Object struct {
	Path string
	URL  string
}

// Store hides where uploaded statements live. Ingestion writes through Save
// and must call Remove on any downstream failure so no orphaned files remain.
type Store interface {
	Save(ctx context.Context, r io.Reader, key string) (*Object, error)
	Remove(ctx context.Context, path string) error
}
