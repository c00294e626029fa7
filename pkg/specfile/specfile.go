// Package specfile loads batches of artifact specs from YAML, JSON or CUE
// documents.
//
// A document lists artifacts with optional shared settings:
//
//	version: 1
//	componentsPath: "@/components/ui"
//	outputDir: generated
//	artifacts:
//	  - kind: form
//	    name: ContactForm
//	    fields:
//	      - {name: email, type: email}
//	    options:
//	      useValidation: true
//
// Omitted options take the values from model.DefaultOptions.
package specfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/render"
)

// ErrEmptyDocument is returned for documents with no content.
var ErrEmptyDocument = errors.New("specfile: document is empty")

// File is a decoded spec document.
type File struct {
	Version        int        `json:"version,omitempty" yaml:"version,omitempty"`
	ComponentsPath string     `json:"componentsPath,omitempty" yaml:"componentsPath,omitempty"`
	OutputDir      string     `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	Artifacts      []Artifact `json:"artifacts" yaml:"artifacts"`
}

// Artifact is one entry of File.Artifacts.
type Artifact struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Name    string            `json:"name" yaml:"name"`
	Fields  []model.FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
	Options Options           `json:"options,omitempty" yaml:"options,omitempty"`
}

// Options mirrors model.GenerationOptions with every field optional.
type Options struct {
	UseValidation *bool  `json:"useValidation,omitempty" yaml:"useValidation,omitempty"`
	HTTPMethod    string `json:"httpMethod,omitempty" yaml:"httpMethod,omitempty"`
	SchemaType    string `json:"schemaType,omitempty" yaml:"schemaType,omitempty"`
	ArrayItemType string `json:"arrayItemType,omitempty" yaml:"arrayItemType,omitempty"`
	TypedParams   *bool  `json:"typedParams,omitempty" yaml:"typedParams,omitempty"`
}

// Resolve overlays o on model.DefaultOptions.
func (o Options) Resolve() model.GenerationOptions {
	out := model.DefaultOptions()
	if o.UseValidation != nil {
		out.UseValidation = *o.UseValidation
	}
	if o.TypedParams != nil {
		out.TypedParams = *o.TypedParams
	}
	if method := strings.TrimSpace(o.HTTPMethod); method != "" {
		out.HTTPMethod = model.HTTPMethod(method)
	}
	if schemaType := strings.ToLower(strings.TrimSpace(o.SchemaType)); schemaType != "" {
		out.SchemaType = model.SchemaType(schemaType)
	}
	if item := strings.ToLower(strings.TrimSpace(o.ArrayItemType)); item != "" {
		out.ArrayItemType = model.SchemaType(item)
	}
	return out
}

// Spec converts the entry into a validated ArtifactSpec.
func (a Artifact) Spec() (model.ArtifactSpec, error) {
	return model.FromSpec(model.ArtifactSpec{
		Kind:    model.ArtifactKind(strings.ToLower(strings.TrimSpace(a.Kind))),
		Name:    a.Name,
		Fields:  a.Fields,
		Options: a.Options.Resolve(),
	}).Build()
}

// Specs converts every artifact, failing on the first invalid entry.
func (f File) Specs() ([]model.ArtifactSpec, error) {
	if len(f.Artifacts) == 0 {
		return nil, &model.ConfigurationError{Field: "artifacts", Reason: "at least one artifact is required"}
	}
	specs := make([]model.ArtifactSpec, 0, len(f.Artifacts))
	for i, artifact := range f.Artifacts {
		spec, err := artifact.Spec()
		if err != nil {
			return nil, fmt.Errorf("specfile: artifacts[%d] %q: %w", i, artifact.Name, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// RenderOptions returns the render options declared by the document.
func (f File) RenderOptions() render.Options {
	return render.Options{ComponentsPath: f.ComponentsPath}
}

func (f File) validate() error {
	if f.Version < 0 || f.Version > 1 {
		return fmt.Errorf("specfile: unsupported version %d", f.Version)
	}
	return nil
}
