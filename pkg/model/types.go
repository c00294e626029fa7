package model

import (
	"github.com/goliatone/go-zodform/pkg/naming"
)

// TypeTag is the raw type label attached to a field. It spans both the schema
// and the input vocabularies; use SchemaType/InputType to resolve it.
type TypeTag string

const (
	TypeString   TypeTag = "string"
	TypeNumber   TypeTag = "number"
	TypeBoolean  TypeTag = "boolean"
	TypeArray    TypeTag = "array"
	TypeObject   TypeTag = "object"
	TypeAny      TypeTag = "any"
	TypeDate     TypeTag = "date"
	TypeText     TypeTag = "text"
	TypeEmail    TypeTag = "email"
	TypePassword TypeTag = "password"
	TypeTel      TypeTag = "tel"
	TypeCheckbox TypeTag = "checkbox"
	TypeSelect   TypeTag = "select"
	TypeTextarea TypeTag = "textarea"
)

// SchemaType enumerates validator primitives.
type SchemaType string

const (
	SchemaString  SchemaType = "string"
	SchemaNumber  SchemaType = "number"
	SchemaBoolean SchemaType = "boolean"
	SchemaArray   SchemaType = "array"
	SchemaObject  SchemaType = "object"
	SchemaDate    SchemaType = "date"
	SchemaAny     SchemaType = "any"
)

// InputType enumerates form controls the form emitters know how to render.
type InputType string

const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputPassword InputType = "password"
	InputNumber   InputType = "number"
	InputTel      InputType = "tel"
	InputDate     InputType = "date"
	InputCheckbox InputType = "checkbox"
	InputSelect   InputType = "select"
	InputTextarea InputType = "textarea"
)

// ArtifactKind selects which emitter handles a spec.
type ArtifactKind string

const (
	KindSchema         ArtifactKind = "schema"
	KindForm           ArtifactKind = "form"
	KindAction         ArtifactKind = "action"
	KindSafeActionPair ArtifactKind = "safe-action-pair"
)

// HTTPMethod documents the intended transport for server actions.
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DELETE"
)

// LanguageTypeScript is the language reported on every generated artifact.
const LanguageTypeScript = "typescript"

// FieldSpec describes one field or parameter.
type FieldSpec struct {
	Name string  `json:"name" yaml:"name"`
	Type TypeTag `json:"type" yaml:"type"`
	// Label overrides the label derived from Name.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	// Options lists the choices rendered for select inputs.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// LabelText returns the display label for the field.
func (f FieldSpec) LabelText() string {
	if f.Label != "" {
		return f.Label
	}
	return naming.ToLabel(f.Name)
}

// DefaultLiteral returns the source literal used as the field's default form
// value. Every field starts as an empty string.
func (f FieldSpec) DefaultLiteral() string {
	return "''"
}

func (f FieldSpec) clone() FieldSpec {
	if len(f.Options) > 0 {
		f.Options = append([]string(nil), f.Options...)
	}
	return f
}

// GenerationOptions toggles emitter behaviour.
type GenerationOptions struct {
	UseValidation bool       `json:"useValidation" yaml:"useValidation"`
	HTTPMethod    HTTPMethod `json:"httpMethod,omitempty" yaml:"httpMethod,omitempty"`
	// SchemaType selects the root of schema artifacts: object (built from
	// Fields), array (of ArrayItemType), or a bare scalar.
	SchemaType    SchemaType `json:"schemaType,omitempty" yaml:"schemaType,omitempty"`
	ArrayItemType SchemaType `json:"arrayItemType,omitempty" yaml:"arrayItemType,omitempty"`
	TypedParams   bool       `json:"typedParams" yaml:"typedParams"`
}

// DefaultOptions returns the options applied when callers do not override
// them.
func DefaultOptions() GenerationOptions {
	return GenerationOptions{
		UseValidation: true,
		HTTPMethod:    MethodPost,
		SchemaType:    SchemaObject,
		TypedParams:   true,
	}
}

// ArtifactSpec is the complete input for one generation call.
type ArtifactSpec struct {
	Kind    ArtifactKind      `json:"kind" yaml:"kind"`
	Name    string            `json:"name" yaml:"name"`
	Fields  []FieldSpec       `json:"fields" yaml:"fields"`
	Options GenerationOptions `json:"options" yaml:"options"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s ArtifactSpec) Clone() ArtifactSpec {
	if s.Fields != nil {
		fields := make([]FieldSpec, len(s.Fields))
		for i, field := range s.Fields {
			fields[i] = field.clone()
		}
		s.Fields = fields
	}
	return s
}

// GeneratedArtifact is one emitted source file.
type GeneratedArtifact struct {
	Filename   string `json:"filename"`
	SourceText string `json:"sourceText"`
	Language   string `json:"language"`
}

// NewArtifact builds a TypeScript artifact.
func NewArtifact(filename, source string) GeneratedArtifact {
	return GeneratedArtifact{
		Filename:   filename,
		SourceText: source,
		Language:   LanguageTypeScript,
	}
}
