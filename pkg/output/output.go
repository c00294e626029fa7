// Package output writes generated artifacts to disk.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-zodform/pkg/model"
)

// ErrExists is returned when a target file exists and overwriting is off.
var ErrExists = errors.New("output: file already exists")

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// Writer saves artifacts under a directory.
type Writer struct {
	dir       string
	overwrite bool
}

// Option customises a Writer.
type Option func(*Writer)

// WithOverwrite allows replacing existing files.
func WithOverwrite(enabled bool) Option {
	return func(w *Writer) {
		w.overwrite = enabled
	}
}

// NewWriter returns a Writer rooted at dir. An empty dir means the current
// directory.
func NewWriter(dir string, options ...Option) *Writer {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	w := &Writer{dir: filepath.Clean(dir)}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Path returns the destination of artifact.
func (w *Writer) Path(artifact model.GeneratedArtifact) (string, error) {
	name := artifact.Filename
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("output: invalid filename %q", artifact.Filename)
	}
	return filepath.Join(w.dir, name), nil
}

// Write saves one artifact and returns its path.
func (w *Writer) Write(artifact model.GeneratedArtifact) (string, error) {
	path, err := w.Path(artifact)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, dirPerm); err != nil {
		return "", fmt.Errorf("output: create %s: %w", w.dir, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !w.overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
		return "", fmt.Errorf("output: open %s: %w", path, err)
	}
	if _, err := f.WriteString(artifact.SourceText); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("output: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("output: close %s: %w", path, err)
	}
	return path, nil
}

// WriteAll saves artifacts in order. Without overwrite every target is
// checked first, so a conflict leaves the directory untouched.
func (w *Writer) WriteAll(artifacts []model.GeneratedArtifact) ([]string, error) {
	if !w.overwrite {
		for _, artifact := range artifacts {
			path, err := w.Path(artifact)
			if err != nil {
				return nil, err
			}
			if _, err := os.Stat(path); err == nil {
				return nil, fmt.Errorf("%w: %s", ErrExists, path)
			}
		}
	}

	paths := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		path, err := w.Write(artifact)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
