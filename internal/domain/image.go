package domain

import (
	"context"
	"io"
)

// ImageStore persists uploaded blobs and returns the URL path they are served under.
type ImageStore interface {
	Store(ctx context.Context, r io.Reader, fieldName, originalFilename string) (string, error)
}
