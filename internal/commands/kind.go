package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/orchestrator"
	"github.com/goliatone/go-zodform/pkg/render"
)

// KindOptions are the flags shared by the schema, form, action and
// safe-action subcommands. Nil toggles fall back to Config.
type KindOptions struct {
	Kind   model.ArtifactKind
	Name   string
	Fields []string

	UseValidation *bool
	TypedParams   *bool
	Method        string
	SchemaType    string
	ArrayItemType string

	ComponentsPath string
	Preset         string
	Output         OutputOptions
}

// Kind generates one artifact kind from flag values.
func (c *Controller) Kind(ctx context.Context, opts KindOptions) error {
	spec, err := c.kindSpec(opts)
	if err != nil {
		return err
	}
	artifacts, err := c.generate(ctx, opts.Preset, orchestrator.Request{
		Spec:          spec,
		RenderOptions: render.Options{ComponentsPath: opts.ComponentsPath},
	})
	if err != nil {
		return err
	}
	return c.emit(artifacts, opts.Output)
}

func (c *Controller) kindSpec(opts KindOptions) (model.ArtifactSpec, error) {
	builder := model.NewBuilder(opts.Kind, opts.Name).Options(c.Config.Options())

	for _, raw := range opts.Fields {
		field, err := ParseField(raw)
		if err != nil {
			return model.ArtifactSpec{}, err
		}
		builder = builder.Fields(field)
	}
	if opts.UseValidation != nil {
		builder = builder.Validation(*opts.UseValidation)
	}
	if opts.TypedParams != nil {
		builder = builder.TypedParams(*opts.TypedParams)
	}
	if opts.Method != "" {
		method, err := model.ParseHTTPMethod(opts.Method)
		if err != nil {
			return model.ArtifactSpec{}, err
		}
		builder = builder.Method(method)
	}

	switch root := model.SchemaType(strings.ToLower(strings.TrimSpace(opts.SchemaType))); root {
	case "", model.SchemaObject:
		if opts.ArrayItemType != "" {
			return model.ArtifactSpec{}, &model.ConfigurationError{Field: "arrayItemType", Reason: "only valid with an array schema type"}
		}
	case model.SchemaArray:
		builder = builder.ArrayOf(model.SchemaType(strings.ToLower(strings.TrimSpace(opts.ArrayItemType))))
	default:
		builder = builder.Scalar(root)
	}
	return builder.Spec(), nil
}

// ParseField parses a `name:type[:option|option...]` flag value.
func ParseField(raw string) (model.FieldSpec, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 3)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return model.FieldSpec{}, &model.ConfigurationError{
			Field:  "field",
			Reason: fmt.Sprintf("%q must look like name:type[:option|option]", raw),
		}
	}
	field := model.FieldSpec{
		Name: strings.TrimSpace(parts[0]),
		Type: model.TypeTag(strings.ToLower(strings.TrimSpace(parts[1]))),
	}
	if len(parts) == 3 {
		for _, option := range strings.Split(parts[2], "|") {
			if option = strings.TrimSpace(option); option != "" {
				field.Options = append(field.Options, option)
			}
		}
	}
	return field, nil
}
