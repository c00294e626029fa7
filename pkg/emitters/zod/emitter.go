// Package zod emits standalone zod validation schemas and exposes the
// validator table the other emitters share.
package zod

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-zodform/pkg/emitters/internal/skeleton"
	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/naming"
	"github.com/goliatone/go-zodform/pkg/render"
	rendertemplate "github.com/goliatone/go-zodform/pkg/render/template"
)

const templateName = "templates/schema.tmpl"

// Option customises the emitter.
type Option = skeleton.Option

// WithTemplatesFS replaces the embedded schema skeleton.
func WithTemplatesFS(files fs.FS) Option { return skeleton.WithTemplatesFS(files) }

// WithTemplateRenderer injects a template renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return skeleton.WithTemplateRenderer(renderer)
}

// Emitter renders schema artifacts.
type Emitter struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Emitter = (*Emitter)(nil)

// New constructs an Emitter backed by the embedded templates.
func New(options ...Option) (*Emitter, error) {
	templates, err := skeleton.Resolve("zod", TemplatesFS(), options...)
	if err != nil {
		return nil, err
	}
	return &Emitter{templates: templates}, nil
}

// Kind reports the artifact kind handled by the emitter.
func (e *Emitter) Kind() model.ArtifactKind { return model.KindSchema }

// Schema returns schema source for the given root. Object roots need at least
// one field; array roots need itemType; every other root is a bare scalar.
func (e *Emitter) Schema(schemaType model.SchemaType, fields []model.FieldSpec, itemType model.SchemaType) (string, error) {
	var (
		body string
		err  error
	)
	switch {
	case schemaType == model.SchemaObject:
		if len(fields) == 0 {
			return "", &model.ConfigurationError{Field: "fields", Reason: "object schemas require at least one field"}
		}
		body, err = ObjectLiteral(fields)
	case schemaType == model.SchemaArray:
		if itemType == "" {
			return "", &model.ConfigurationError{Field: "arrayItemType", Reason: "array schemas require an item type"}
		}
		body, err = ArrayOf(itemType)
	default:
		body, err = Validator(schemaType)
	}
	if err != nil {
		return "", err
	}

	out, err := e.templates.RenderTemplate(templateName, map[string]any{
		"schema": body,
	})
	if err != nil {
		return "", fmt.Errorf("zod: render schema: %w", err)
	}
	return out, nil
}

// Emit renders spec as a single <name>_schema.ts artifact.
func (e *Emitter) Emit(ctx context.Context, spec model.ArtifactSpec, _ render.Options) ([]model.GeneratedArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root := spec.Options.SchemaType
	if root == "" {
		root = model.SchemaObject
	}
	source, err := e.Schema(root, spec.Fields, spec.Options.ArrayItemType)
	if err != nil {
		return nil, err
	}
	return []model.GeneratedArtifact{
		model.NewArtifact(naming.Filename(spec.Name, naming.SuffixSchema), source),
	}, nil
}
