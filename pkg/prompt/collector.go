// Package prompt collects artifact specs interactively from a terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-zodform/pkg/model"
)

const maxFields = 20

// page is one interactive flow, keyed by the artifact kind it produces.
type page struct {
	title       string
	kind        model.ArtifactKind
	defaultName string
}

var pages = []page{
	{title: "Zod schema", kind: model.KindSchema, defaultName: "schema"},
	{title: "shadcn form", kind: model.KindForm, defaultName: "ContactForm"},
	{title: "Server action", kind: model.KindAction, defaultName: "handleFormSubmission"},
	{title: "Safe action pair", kind: model.KindSafeActionPair, defaultName: "submitForm"},
}

var (
	schemaRoots = []model.SchemaType{
		model.SchemaObject, model.SchemaArray, model.SchemaString,
		model.SchemaNumber, model.SchemaBoolean, model.SchemaDate, model.SchemaAny,
	}
	schemaTags = []model.TypeTag{
		model.TypeString, model.TypeNumber, model.TypeBoolean, model.TypeDate,
		model.TypeArray, model.TypeObject, model.TypeAny,
	}
	inputTags = []model.TypeTag{
		model.TypeText, model.TypeEmail, model.TypePassword, model.TypeNumber, model.TypeTel,
		model.TypeDate, model.TypeCheckbox, model.TypeSelect, model.TypeTextarea,
	}
	methods = []model.HTTPMethod{model.MethodPost, model.MethodGet, model.MethodPut, model.MethodDelete}
)

// Collector walks the user through one artifact spec.
type Collector struct {
	driver Driver
}

// NewCollector returns a Collector using driver.
func NewCollector(driver Driver) *Collector {
	return &Collector{driver: driver}
}

// Kinds lists the page titles in the order they are offered.
func Kinds() []string {
	titles := make([]string, len(pages))
	for i, p := range pages {
		titles[i] = p.title
	}
	return titles
}

// Collect asks for the artifact kind and then runs that kind's flow. The
// returned spec is normalised and validated.
func (c *Collector) Collect(ctx context.Context) (model.ArtifactSpec, error) {
	if c.driver == nil {
		return model.ArtifactSpec{}, errors.New("prompt: driver is nil")
	}
	idx, err := c.choose(ctx, "Select a generator", Kinds(), 0)
	if err != nil {
		return model.ArtifactSpec{}, err
	}
	return c.CollectKind(ctx, pages[idx].kind)
}

// CollectKind runs the flow for kind.
func (c *Collector) CollectKind(ctx context.Context, kind model.ArtifactKind) (model.ArtifactSpec, error) {
	if c.driver == nil {
		return model.ArtifactSpec{}, errors.New("prompt: driver is nil")
	}
	p, ok := pageFor(kind)
	if !ok {
		return model.ArtifactSpec{}, fmt.Errorf("prompt: no flow for kind %q", kind)
	}

	name, err := c.driver.Input(ctx, InputConfig{
		Message:   "Name",
		Default:   p.defaultName,
		Validator: validateIdentifier,
	})
	if err != nil {
		return model.ArtifactSpec{}, err
	}
	builder := model.NewBuilder(kind, name)

	switch kind {
	case model.KindSchema:
		builder, err = c.schemaFlow(ctx, builder)
	case model.KindForm:
		builder, err = c.formFlow(ctx, builder)
	case model.KindAction:
		builder, err = c.actionFlow(ctx, builder)
	case model.KindSafeActionPair:
		builder, err = c.fields(ctx, builder, "Field", inputTags)
	}
	if err != nil {
		return model.ArtifactSpec{}, err
	}
	return builder.Build()
}

func (c *Collector) schemaFlow(ctx context.Context, builder model.Builder) (model.Builder, error) {
	idx, err := c.choose(ctx, "Select schema type", schemaTypeNames(schemaRoots), 0)
	if err != nil {
		return builder, err
	}
	switch root := schemaRoots[idx]; root {
	case model.SchemaObject:
		return c.fields(ctx, builder, "Field", schemaTags)
	case model.SchemaArray:
		items := []model.SchemaType{model.SchemaString, model.SchemaNumber, model.SchemaBoolean, model.SchemaObject}
		item, err := c.choose(ctx, "Array item type", schemaTypeNames(items), 0)
		if err != nil {
			return builder, err
		}
		return builder.ArrayOf(items[item]), nil
	default:
		return builder.Scalar(root), nil
	}
}

func (c *Collector) formFlow(ctx context.Context, builder model.Builder) (model.Builder, error) {
	builder, err := c.fields(ctx, builder, "Field", inputTags)
	if err != nil {
		return builder, err
	}
	validate, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "Add zod validation?", Default: true})
	if err != nil {
		return builder, err
	}
	return builder.Validation(validate), nil
}

func (c *Collector) actionFlow(ctx context.Context, builder model.Builder) (model.Builder, error) {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	idx, err := c.choose(ctx, "HTTP method", names, 0)
	if err != nil {
		return builder, err
	}
	builder = builder.Method(methods[idx])

	builder, err = c.fields(ctx, builder, "Parameter", schemaTags)
	if err != nil {
		return builder, err
	}
	validate, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "Use zod for input validation?", Default: true})
	if err != nil {
		return builder, err
	}
	typed, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "Annotate parameter types?", Default: true})
	if err != nil {
		return builder, err
	}
	return builder.Validation(validate).TypedParams(typed), nil
}

// fields asks for a count and then a name and type per row. Select rows also
// ask for their comma-separated options.
func (c *Collector) fields(ctx context.Context, builder model.Builder, noun string, tags []model.TypeTag) (model.Builder, error) {
	raw, err := c.driver.Input(ctx, InputConfig{
		Message:   fmt.Sprintf("Number of %ss", strings.ToLower(noun)),
		Default:   "1",
		Validator: validateCount,
	})
	if err != nil {
		return builder, err
	}
	count, err := parseCount(raw)
	if err != nil {
		return builder, err
	}

	tagNames := make([]string, len(tags))
	for i, tag := range tags {
		tagNames[i] = string(tag)
	}
	for i := 1; i <= count; i++ {
		name, err := c.driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("%s %d name", noun, i),
			Validator: validateIdentifier,
		})
		if err != nil {
			return builder, err
		}
		idx, err := c.choose(ctx, fmt.Sprintf("%s %d type", noun, i), tagNames, 0)
		if err != nil {
			return builder, err
		}
		field := model.FieldSpec{Name: strings.TrimSpace(name), Type: tags[idx]}
		if field.Type == model.TypeSelect {
			options, err := c.driver.Input(ctx, InputConfig{
				Message:   fmt.Sprintf("%s %d options (comma separated)", noun, i),
				Validator: validateOptions,
			})
			if err != nil {
				return builder, err
			}
			field.Options = splitOptions(options)
		}
		builder = builder.Fields(field)
	}
	return builder, nil
}

func (c *Collector) choose(ctx context.Context, message string, options []string, def int) (int, error) {
	idx, err := c.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: def})
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(options) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChoice, idx)
	}
	return idx, nil
}

func pageFor(kind model.ArtifactKind) (page, bool) {
	for _, p := range pages {
		if p.kind == kind {
			return p, true
		}
	}
	return page{}, false
}

func schemaTypeNames(types []model.SchemaType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

func validateIdentifier(value string) error {
	if !model.IsIdentifier(strings.TrimSpace(value)) {
		return fmt.Errorf("%q is not a valid identifier", value)
	}
	return nil
}

func validateCount(value string) error {
	_, err := parseCount(value)
	return err
}

func parseCount(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 || n > maxFields {
		return 0, fmt.Errorf("enter a number between 1 and %d", maxFields)
	}
	return n, nil
}

func validateOptions(value string) error {
	if len(splitOptions(value)) == 0 {
		return errors.New("enter at least one option")
	}
	return nil
}

func splitOptions(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultName returns the name offered for kind, or "" for unknown kinds.
func DefaultName(kind model.ArtifactKind) string {
	p, _ := pageFor(kind)
	return p.defaultName
}
