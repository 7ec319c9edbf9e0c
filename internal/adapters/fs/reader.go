// Package fs reads dataset resources from the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResourceReader = (*Reader)(nil)

// ErrOutsideBasePath is returned when a resource path escapes the dataset directory.
var ErrOutsideBasePath = zerr.New("resource path escapes the dataset directory")

// Reader reads resources below a dataset directory.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the content of basePath/rel. rel must stay inside basePath.
func (r *Reader) Read(ctx context.Context, basePath, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		return nil, zerr.With(ErrOutsideBasePath, "path", rel)
	}
	full := filepath.Join(basePath, local)

	data, err := os.ReadFile(full) //nolint:gosec // Path is confined to basePath above
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrResourceReadFailed.Error()), "path", full)
	}
	return data, nil
}
