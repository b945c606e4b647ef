package ports

import (
	"context"
	"io"
)

// ObjectStore is the event-asset blob bucket.
type ObjectStore interface {
	ListKeys(ctx context.Context) ([]string, error)
	// RemoveKeys deletes a batch of objects. Callers bound batch sizes.
	RemoveKeys(ctx context.Context, keys []string) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// ExtractKey maps a public URL back to an object key in this bucket.
	// URLs pointing anywhere else (stock placeholders included) yield
	// ok=false and must never be deleted.
	ExtractKey(rawURL string) (key string, ok bool)
}
