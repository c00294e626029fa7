// Package safeaction emits a next-safe-action server action together with the
// client form that calls it. Both halves are rendered from one naming.Pair and
// one schema declaration so the identifiers and validation rules they share
// cannot diverge.
package safeaction

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/goliatone/go-zodform/pkg/emitters/internal/skeleton"
	"github.com/goliatone/go-zodform/pkg/emitters/shadcn"
	"github.com/goliatone/go-zodform/pkg/emitters/zod"
	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/naming"
	"github.com/goliatone/go-zodform/pkg/render"
	rendertemplate "github.com/goliatone/go-zodform/pkg/render/template"
)

const (
	actionTemplate = "templates/action.tmpl"
	formTemplate   = "templates/form.tmpl"

	defaultsDepth = 3
)

var (
	exportPattern = regexp.MustCompile(`(?m)^export const ([A-Za-z_$][A-Za-z0-9_$]*) = createSafeAction\(`)
	importPattern = regexp.MustCompile(`(?m)^import \{ ([A-Za-z_$][A-Za-z0-9_$]*) as [A-Za-z_$][A-Za-z0-9_$]* \} from '([^']+)'$`)
)

// Option customises the emitter.
type Option = skeleton.Option

// WithTemplatesFS replaces the embedded action and form skeletons.
func WithTemplatesFS(files fs.FS) Option { return skeleton.WithTemplatesFS(files) }

// WithTemplateRenderer injects a template renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return skeleton.WithTemplateRenderer(renderer)
}

// Emitter renders safe-action pairs.
type Emitter struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Emitter = (*Emitter)(nil)

// New constructs an Emitter backed by the embedded templates.
func New(options ...Option) (*Emitter, error) {
	templates, err := skeleton.Resolve("safeaction", TemplatesFS(), options...)
	if err != nil {
		return nil, err
	}
	return &Emitter{templates: templates}, nil
}

// Kind reports the artifact kind handled by the emitter.
func (e *Emitter) Kind() model.ArtifactKind { return model.KindSafeActionPair }

// Pair renders the action and form halves for name.
func (e *Emitter) Pair(name string, fields []model.FieldSpec, options render.Options) (model.GeneratedArtifact, model.GeneratedArtifact, error) {
	var none model.GeneratedArtifact
	if len(fields) == 0 {
		return none, none, &model.ConfigurationError{Field: "fields", Reason: "safe action pairs require at least one field"}
	}

	names := naming.PairNames(name)
	schema := shadcn.SchemaDeclaration(fields)

	actionSource, err := e.renderAction(names, schema)
	if err != nil {
		return none, none, err
	}
	formSource, err := e.renderForm(names, schema, fields, options)
	if err != nil {
		return none, none, err
	}

	action := model.NewArtifact(names.ActionFile, actionSource)
	form := model.NewArtifact(names.FormFile, formSource)
	if err := CheckConsistency(action, form); err != nil {
		return none, none, err
	}
	return action, form, nil
}

func (e *Emitter) renderAction(names naming.Pair, schema string) (string, error) {
	out, err := e.templates.RenderTemplate(actionTemplate, map[string]any{
		"action":     names.Action,
		"schema":     schema,
		"schemaName": names.Schema,
	})
	if err != nil {
		return "", fmt.Errorf("safeaction: render action: %w", err)
	}
	return out, nil
}

func (e *Emitter) renderForm(names naming.Pair, schema string, fields []model.FieldSpec, options render.Options) (string, error) {
	blocks, err := shadcn.FieldBlocks(fields, shadcn.FieldDepth)
	if err != nil {
		return "", err
	}

	imports := []string{
		"import { useForm } from 'react-hook-form'",
		shadcn.ResolverImport,
		zod.ImportStatement,
		"import { useAction } from 'next-safe-action/hooks'",
		fmt.Sprintf("import { %s as %s } from %s", names.Action, names.ActionAlias, render.QuoteString(names.ActionModule)),
	}
	imports = append(imports, shadcn.ComponentImports(blocks, options)...)

	out, err := e.templates.RenderTemplate(formTemplate, map[string]any{
		"imports":     strings.Join(imports, "\n"),
		"schema":      schema,
		"schemaName":  names.Schema,
		"component":   names.Form,
		"actionAlias": names.ActionAlias,
		"toastModule": options.Component("use-toast"),
		"defaults":    shadcn.DefaultValues(fields, defaultsDepth),
		"fields":      blocks.Source,
	})
	if err != nil {
		return "", fmt.Errorf("safeaction: render form: %w", err)
	}
	return out, nil
}

// Emit renders spec as two artifacts, action first.
func (e *Emitter) Emit(ctx context.Context, spec model.ArtifactSpec, options render.Options) ([]model.GeneratedArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	action, form, err := e.Pair(spec.Name, spec.Fields, options)
	if err != nil {
		return nil, err
	}
	return []model.GeneratedArtifact{action, form}, nil
}

// CheckConsistency verifies that the form imports exactly the identifier the
// action exports, from the action's own module.
func CheckConsistency(action, form model.GeneratedArtifact) error {
	exported := ""
	if m := exportPattern.FindStringSubmatch(action.SourceText); m != nil {
		exported = m[1]
	}
	imported, module := "", ""
	if m := importPattern.FindStringSubmatch(form.SourceText); m != nil {
		imported, module = m[1], m[2]
	}
	if exported == "" || imported != exported {
		return &model.InconsistentNameError{Imported: imported, Exported: exported}
	}
	if module != naming.ModulePath(action.Filename) {
		return &model.InconsistentNameError{Imported: module, Exported: naming.ModulePath(action.Filename)}
	}
	return nil
}
