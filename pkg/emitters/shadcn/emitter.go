// Package shadcn emits react-hook-form components built from shadcn/ui
// primitives, optionally validated with zod.
package shadcn

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
	templateName = "templates/form.tmpl"

	// FieldDepth is the indentation depth of field blocks inside <form>.
	FieldDepth    = 4
	defaultsDepth = 3
)

// Option customises the emitter.
type Option = skeleton.Option

// WithTemplatesFS replaces the embedded form skeleton.
func WithTemplatesFS(files fs.FS) Option { return skeleton.WithTemplatesFS(files) }

// WithTemplateRenderer injects a template renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return skeleton.WithTemplateRenderer(renderer)
}

// Emitter renders form artifacts.
type Emitter struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Emitter = (*Emitter)(nil)

// New constructs an Emitter backed by the embedded templates.
func New(options ...Option) (*Emitter, error) {
	templates, err := skeleton.Resolve("shadcn", TemplatesFS(), options...)
	if err != nil {
		return nil, err
	}
	return &Emitter{templates: templates}, nil
}

// Kind reports the artifact kind handled by the emitter.
func (e *Emitter) Kind() model.ArtifactKind { return model.KindForm }

// Form renders a component named formName with one field block per field.
// An empty field list is a ConfigurationError.
func (e *Emitter) Form(formName string, fields []model.FieldSpec, useValidation bool, options render.Options) (string, error) {
	if len(fields) == 0 {
		return "", &model.ConfigurationError{Field: "fields", Reason: "forms require at least one field"}
	}
	blocks, err := FieldBlocks(fields, FieldDepth)
	if err != nil {
		return "", err
	}

	imports := []string{"import { useForm } from 'react-hook-form'"}
	data := map[string]any{
		"component":  naming.ToComponentName(formName),
		"defaults":   DefaultValues(fields, defaultsDepth),
		"fields":     blocks.Source,
		"schema":     "",
		"formType":   "",
		"resolver":   "",
		"valuesType": "Record<string, unknown>",
	}
	if useValidation {
		imports = append(imports, ResolverImport, zod.ImportStatement)
		data["schema"] = SchemaDeclaration(fields) + "\n" + formValuesType + "\n\n"
		data["formType"] = "<FormValues>"
		data["resolver"] = "    resolver: zodResolver(" + naming.SchemaIdentifier + "),\n"
		data["valuesType"] = "FormValues"
	}
	imports = append(imports, ComponentImports(blocks, options)...)
	data["imports"] = strings.Join(imports, "\n")

	out, err := e.templates.RenderTemplate(templateName, data)
	if err != nil {
		return "", fmt.Errorf("shadcn: render form: %w", err)
	}
	return out, nil
}

// Emit renders spec as a single <name>_form.tsx artifact.
func (e *Emitter) Emit(ctx context.Context, spec model.ArtifactSpec, options render.Options) ([]model.GeneratedArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source, err := e.Form(spec.Name, spec.Fields, spec.Options.UseValidation, options)
	if err != nil {
		return nil, err
	}
	return []model.GeneratedArtifact{
		model.NewArtifact(naming.Filename(spec.Name, naming.SuffixForm), source),
	}, nil
}

// ResolverImport wires zod into react-hook-form.
const ResolverImport = "import { zodResolver } from '@hookform/resolvers/zod'"

const formValuesType = "type FormValues = z.infer<typeof " + naming.SchemaIdentifier + ">"

// SchemaDeclaration renders the shared form schema constant. Every field is
// validated as a required string.
func SchemaDeclaration(fields []model.FieldSpec) string {
	return "const " + naming.SchemaIdentifier + " = " + zod.RequiredStringObject(fields) + "\n"
}
