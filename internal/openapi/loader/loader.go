// Package loader reads OpenAPI documents from disk, an fs.FS or HTTP.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	pkgopenapi "github.com/goliatone/go-zodform/pkg/openapi"
)

// Loader implements pkgopenapi.Loader.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
	limit   int64
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New builds a Loader. URL sources stay disabled unless options carry a
// client.
func New(options pkgopenapi.LoaderOptions) *Loader {
	l := &Loader{
		files:   options.FileSystem,
		timeout: options.RequestTimeout,
		limit:   options.MaxDocumentBytes,
	}
	if l.limit < 1 {
		l.limit = pkgopenapi.DefaultMaxDocumentBytes
	}
	if options.HTTPClient != nil {
		client := *options.HTTPClient
		if client.Timeout == 0 {
			client.Timeout = l.timeout
		}
		l.client = &client
	}
	return l
}

// Load reads src into a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}
	location := src.Location()
	if location == "" {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s source has no location", src.Kind())
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		data, err = l.readOpened(os.Open(location))
	case pkgopenapi.SourceKindFS:
		if l.files == nil {
			return pkgopenapi.Document{}, errors.New("openapi loader: no filesystem configured")
		}
		data, err = l.readOpened(l.files.Open(location))
	case pkgopenapi.SourceKindURL:
		data, err = l.fetch(ctx, location)
	default:
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: read %s: %w", location, err)
	}
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.client == nil {
		return nil, errors.New("http sources are disabled")
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return l.readCapped(resp.Body)
}

func (l *Loader) readOpened(f io.ReadCloser, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.readCapped(f)
}

// readCapped reads one byte past the limit so an oversized document fails
// instead of parsing truncated.
func (l *Loader) readCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.limit {
		return nil, fmt.Errorf("%w (%d bytes)", pkgopenapi.ErrDocumentTooLarge, l.limit)
	}
	return data, nil
}
