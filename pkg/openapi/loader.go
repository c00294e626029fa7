package openapi

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

// DefaultMaxDocumentBytes caps a document unless WithMaxDocumentBytes says
// otherwise.
const DefaultMaxDocumentBytes int64 = 16 << 20

// ErrDocumentTooLarge reports a source larger than the loader cap.
var ErrDocumentTooLarge = errors.New("openapi: document exceeds size limit")

// Loader fetches OpenAPI documents from files, an fs.FS, or HTTP.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions selects the sources a Loader may read and bounds each read.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups.
	FileSystem fs.FS

	// HTTPClient fetches URL sources. URL sources fail while it is nil.
	HTTPClient *http.Client

	// RequestTimeout bounds each remote fetch. Zero keeps the client's own.
	RequestTimeout time.Duration

	// MaxDocumentBytes applies to every source kind.
	MaxDocumentBytes int64
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables URL sources through client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a plain client when none was
// injected, and bounds each fetch by timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		if opts.HTTPClient == nil {
			opts.HTTPClient = &http.Client{}
		}
		opts.RequestTimeout = timeout
	}
}

// WithMaxDocumentBytes overrides DefaultMaxDocumentBytes. Values below one
// keep the default.
func WithMaxDocumentBytes(limit int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxDocumentBytes = limit
	}
}

// NewLoaderOptions applies options over the defaults.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{MaxDocumentBytes: DefaultMaxDocumentBytes}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.MaxDocumentBytes < 1 {
		cfg.MaxDocumentBytes = DefaultMaxDocumentBytes
	}
	return cfg
}
