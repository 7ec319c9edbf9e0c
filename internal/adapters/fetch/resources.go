// Package fetch decodes tile headers of 3D Tiles and I3S datasets.
package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"

	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxResourceSize bounds a single header or content download.
const maxResourceSize = 64 << 20

// HTTPReader reads resources from an HTTP server.
type HTTPReader struct {
	client *http.Client
}

// NewHTTPReader creates an HTTPReader. A nil client means http.DefaultClient.
func NewHTTPReader(client *http.Client) *HTTPReader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPReader{client: client}
}

// Read issues a GET for basePath/rel.
func (r *HTTPReader) Read(ctx context.Context, basePath, rel string) ([]byte, error) {
	url := strings.TrimRight(basePath, "/") + "/" + strings.TrimLeft(rel, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrResourceReadFailed.Error()), "url", url)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrResourceReadFailed.Error()), "url", url)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.With(domain.ErrResourceReadFailed, "url", url), "status", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceSize))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrResourceReadFailed.Error()), "url", url)
	}
	return data, nil
}

// Resources routes reads to HTTP for http(s) base paths and to the filesystem otherwise.
type Resources struct {
	HTTP  ports.ResourceReader
	Files ports.ResourceReader
}

// Read reads rel below basePath with the reader matching basePath.
func (r *Resources) Read(ctx context.Context, basePath, rel string) ([]byte, error) {
	if IsRemote(basePath) {
		return r.HTTP.Read(ctx, basePath, rel)
	}
	return r.Files.Read(ctx, basePath, rel)
}

// IsRemote reports whether basePath is an http(s) URL.
func IsRemote(basePath string) bool {
	return strings.HasPrefix(basePath, "http://") || strings.HasPrefix(basePath, "https://")
}
