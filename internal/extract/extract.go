// Package extract wraps the external media-extraction backend behind small
// interfaces so the pipeline can be driven without network access in tests.
package extract

import (
	"context"
	"io"
)

// Resolver resolves a URL to downloadable media without transferring it.
type Resolver interface {
	Resolve(ctx context.Context, url string) (Resolved, error)
}

// Resolved is one resolved URL; Download streams a single index-selected
// item of the underlying playlist or collection. Index is 1-based.
type Resolved interface {
	Download(ctx context.Context, index int) (io.ReadCloser, error)
}
