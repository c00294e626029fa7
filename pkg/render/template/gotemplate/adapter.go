// Package gotemplate renders artifact skeletons with pongo2.
package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-zodform/pkg/render"
	"github.com/goliatone/go-zodform/pkg/render/template"
)

// Extension is appended to skeleton names given without one.
const Extension = ".tmpl"

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	files fs.FS
}

// WithFS sets the template bundle.
func WithFS(files fs.FS) Option {
	return func(s *settings) {
		s.files = files
	}
}

// Engine renders skeletons from a pongo2 set. Parsed skeletons are cached.
type Engine struct {
	mu     sync.RWMutex
	set    *pongo2.TemplateSet
	parsed map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. WithFS is required.
func New(options ...Option) (*Engine, error) {
	var s settings
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	if s.files == nil {
		return nil, errors.New("gotemplate: template fs is required")
	}

	registerFilters()
	return &Engine{
		set:    pongo2.NewSet("zodform", pongo2.NewFSLoader(s.files)),
		parsed: map[string]*pongo2.Template{},
	}, nil
}

// RenderTemplate executes the skeleton called name and copies the result to
// every writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}
	tpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.run(tpl, data, name, out)
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl, ok := e.parsed[name]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tpl, ok := e.parsed[name]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	e.parsed[name] = tpl
	return tpl, nil
}

func (e *Engine) run(tpl *pongo2.Template, data any, label string, out []io.Writer) (string, error) {
	values, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", label, err)
	}

	rendered, err := tpl.Execute(values)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// toContext accepts maps directly and flattens anything else through JSON so
// skeletons only see maps, slices and scalars.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	values := pongo2.Context{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

var filterOnce sync.Once

// registerFilters installs the escaping filters skeletons use for dynamic
// literals. They route through the render escaping helpers.
func registerFilters() {
	filterOnce.Do(func() {
		builtin := map[string]func(string) string{
			"tsquote": render.QuoteString,
		}
		for name, fn := range builtin {
			if pongo2.FilterExists(name) {
				continue
			}
			_ = pongo2.RegisterFilter(name, func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsSafeValue(fn(in.String())), nil
			})
		}
	})
}
