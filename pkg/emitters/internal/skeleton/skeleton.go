// Package skeleton resolves the template engine each emitter renders its
// artifact skeleton with.
package skeleton

import (
	"fmt"
	"io/fs"

	rendertemplate "github.com/goliatone/go-zodform/pkg/render/template"
	"github.com/goliatone/go-zodform/pkg/render/template/gotemplate"
)

// Config holds template overrides.
type Config struct {
	TemplatesFS      fs.FS
	TemplateRenderer rendertemplate.TemplateRenderer
}

// Option customises Config.
type Option func(*Config)

// WithTemplatesFS supplies an alternate template bundle. The bundle must
// contain the same templates/<name>.tmpl paths as the embedded default.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *Config) {
		if files != nil {
			cfg.TemplatesFS = files
		}
	}
}

// WithTemplateRenderer injects a ready-made renderer and bypasses engine
// construction.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *Config) {
		if renderer != nil {
			cfg.TemplateRenderer = renderer
		}
	}
}

// Resolve applies options over defaults and returns the renderer to use.
func Resolve(owner string, defaults fs.FS, options ...Option) (rendertemplate.TemplateRenderer, error) {
	cfg := Config{TemplatesFS: defaults}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.TemplateRenderer != nil {
		return cfg.TemplateRenderer, nil
	}
	engine, err := gotemplate.New(gotemplate.WithFS(cfg.TemplatesFS))
	if err != nil {
		return nil, fmt.Errorf("%s: configure templates: %w", owner, err)
	}
	return engine, nil
}
