package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-zodform/pkg/model"
)

// Transformer mutates an ArtifactSpec after normalisation and before
// validation. Implementations can relabel fields, rename them, or patch
// generation options.
type Transformer interface {
	Transform(ctx context.Context, spec *model.ArtifactSpec) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, spec *model.ArtifactSpec) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, spec *model.ArtifactSpec) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, spec)
}

// PresetTransformer applies declarative overrides loaded from a JSON or YAML
// document:
//
//	{
//	  "options": {"useValidation": false, "httpMethod": "PUT"},
//	  "fields": {
//	    "email": {"label": "Work email", "type": "email"},
//	    "nick": {"rename": "nickname"}
//	  }
//	}
//
// Patches for fields the spec does not declare are an error.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Options *optionsPatch         `json:"options" yaml:"options"`
	Fields  map[string]fieldPatch `json:"fields" yaml:"fields"`
}

type optionsPatch struct {
	UseValidation *bool   `json:"useValidation" yaml:"useValidation"`
	HTTPMethod    *string `json:"httpMethod" yaml:"httpMethod"`
	TypedParams   *bool   `json:"typedParams" yaml:"typedParams"`
}

type fieldPatch struct {
	Label   string   `json:"label" yaml:"label"`
	Type    string   `json:"type" yaml:"type"`
	Rename  string   `json:"rename" yaml:"rename"`
	Options []string `json:"options" yaml:"options"`
}

// NewPresetTransformer constructs a transformer from raw JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewYAMLPresetTransformer constructs a transformer from raw YAML bytes.
func NewYAMLPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys. Files ending
// in .yaml or .yml are decoded as YAML, everything else as JSON.
func NewPresetTransformerFromFS(fsys fs.FS, name string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", name, err)
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return NewYAMLPresetTransformer(data)
	default:
		return NewPresetTransformer(data)
	}
}

// Transform applies the declarative patches onto spec.
func (t *PresetTransformer) Transform(ctx context.Context, spec *model.ArtifactSpec) error {
	if spec == nil {
		return errors.New("preset transformer: spec is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if patch := t.document.Options; patch != nil {
		if patch.UseValidation != nil {
			spec.Options.UseValidation = *patch.UseValidation
		}
		if patch.TypedParams != nil {
			spec.Options.TypedParams = *patch.TypedParams
		}
		if patch.HTTPMethod != nil {
			method, err := model.ParseHTTPMethod(*patch.HTTPMethod)
			if err != nil {
				return fmt.Errorf("preset transformer: %w", err)
			}
			spec.Options.HTTPMethod = method
		}
	}

	for name, patch := range t.document.Fields {
		field := findField(spec.Fields, name)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", name)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *model.FieldSpec, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if tag := strings.ToLower(strings.TrimSpace(patch.Type)); tag != "" {
		field.Type = model.TypeTag(tag)
	}
	if len(patch.Options) > 0 {
		field.Options = append([]string(nil), patch.Options...)
	}
	if rename := strings.TrimSpace(patch.Rename); rename != "" {
		field.Name = rename
	}
}

func findField(fields []model.FieldSpec, name string) *model.FieldSpec {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for idx := range fields {
		if fields[idx].Name == name {
			return &fields[idx]
		}
	}
	return nil
}
