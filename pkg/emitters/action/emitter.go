// Package action emits Next.js server actions with optional zod input
// validation.
package action

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-zodform/pkg/emitters/internal/skeleton"
	"github.com/goliatone/go-zodform/pkg/emitters/zod"
	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/naming"
	"github.com/goliatone/go-zodform/pkg/render"
	rendertemplate "github.com/goliatone/go-zodform/pkg/render/template"
)

const (
	templateName = "templates/action.tmpl"

	inputSchemaIdentifier = "inputSchema"
)

var tsTypes = map[model.SchemaType]string{
	model.SchemaString:  "string",
	model.SchemaNumber:  "number",
	model.SchemaBoolean: "boolean",
	model.SchemaDate:    "Date",
	model.SchemaAny:     "any",
	model.SchemaArray:   "unknown[]",
	model.SchemaObject:  "Record<string, unknown>",
}

// TSType returns the TypeScript annotation for a parameter tag.
func TSType(tag model.TypeTag) (string, error) {
	schemaType, err := tag.SchemaType()
	if err != nil {
		return "", err
	}
	return tsTypes[schemaType], nil
}

// Option customises the emitter.
type Option = skeleton.Option

// WithTemplatesFS replaces the embedded server action skeleton.
func WithTemplatesFS(files fs.FS) Option { return skeleton.WithTemplatesFS(files) }

// WithTemplateRenderer injects a template renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return skeleton.WithTemplateRenderer(renderer)
}

// Emitter renders server action artifacts.
type Emitter struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Emitter = (*Emitter)(nil)

// New constructs an Emitter backed by the embedded templates.
func New(options ...Option) (*Emitter, error) {
	templates, err := skeleton.Resolve("action", TemplatesFS(), options...)
	if err != nil {
		return nil, err
	}
	return &Emitter{templates: templates}, nil
}

// Kind reports the artifact kind handled by the emitter.
func (e *Emitter) Kind() model.ArtifactKind { return model.KindAction }

// Action renders an async function named actionName taking params in order.
// The HTTP method only appears in the doc comment.
func (e *Emitter) Action(actionName string, method model.HTTPMethod, params []model.FieldSpec, useValidation, typed bool) (string, error) {
	if method == "" {
		method = model.MethodPost
	}
	if !method.Valid() {
		return "", &model.ConfigurationError{Field: "httpMethod", Reason: fmt.Sprintf("unsupported method %q", method)}
	}

	signature := make([]string, 0, len(params))
	names := make([]string, 0, len(params))
	for _, param := range params {
		tsType, err := TSType(param.Type)
		if err != nil {
			return "", &model.ConfigurationError{Field: param.Name, Reason: fmt.Sprintf("unrecognised type tag %q", param.Type)}
		}
		if typed {
			signature = append(signature, param.Name+": "+tsType)
		} else {
			signature = append(signature, param.Name)
		}
		names = append(names, param.Name)
	}
	args := strings.Join(names, ", ")

	data := map[string]any{
		"name":       naming.ToComponentName(actionName),
		"params":     strings.Join(signature, ", "),
		"args":       args,
		"summary":    render.CommentText(fmt.Sprintf("Handles %s submissions.", method)),
		"imports":    "",
		"schema":     "",
		"validation": "",
	}
	if useValidation {
		object, err := zod.ObjectLiteral(params)
		if err != nil {
			return "", err
		}
		data["imports"] = zod.ImportStatement + "\n\n"
		data["schema"] = "const " + inputSchemaIdentifier + " = " + object + "\n\n"
		data["validation"] = fmt.Sprintf("  const validatedInput = %s.parse({ %s })\n  console.log('Validated input:', validatedInput)\n\n", inputSchemaIdentifier, args)
	}

	out, err := e.templates.RenderTemplate(templateName, data)
	if err != nil {
		return "", fmt.Errorf("action: render action: %w", err)
	}
	return out, nil
}

// Emit renders spec as a single <name>_server_actions.ts artifact.
func (e *Emitter) Emit(ctx context.Context, spec model.ArtifactSpec, _ render.Options) ([]model.GeneratedArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source, err := e.Action(spec.Name, spec.Options.HTTPMethod, spec.Fields, spec.Options.UseValidation, spec.Options.TypedParams)
	if err != nil {
		return nil, err
	}
	return []model.GeneratedArtifact{
		model.NewArtifact(naming.Filename(spec.Name, naming.SuffixServerActions), source),
	}, nil
}
