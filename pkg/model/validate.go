package model

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var reservedWords = map[string]struct{}{
	"await": {}, "break": {}, "case": {}, "catch": {}, "class": {}, "const": {},
	"continue": {}, "debugger": {}, "default": {}, "delete": {}, "do": {},
	"else": {}, "enum": {}, "export": {}, "extends": {}, "false": {},
	"finally": {}, "for": {}, "function": {}, "if": {}, "implements": {},
	"import": {}, "in": {}, "instanceof": {}, "interface": {}, "let": {},
	"new": {}, "null": {}, "package": {}, "private": {}, "protected": {},
	"public": {}, "return": {}, "static": {}, "super": {}, "switch": {},
	"this": {}, "throw": {}, "true": {}, "try": {}, "typeof": {}, "var": {},
	"void": {}, "while": {}, "with": {}, "yield": {},
}

// IsIdentifier reports whether name can be emitted as a TypeScript
// identifier.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// IsReserved reports whether name is a reserved word.
func IsReserved(name string) bool {
	_, ok := reservedWords[name]
	return ok
}

// Valid reports whether k is a known artifact kind.
func (k ArtifactKind) Valid() bool {
	switch k {
	case KindSchema, KindForm, KindAction, KindSafeActionPair:
		return true
	}
	return false
}

// Valid reports whether m is a supported method.
func (m HTTPMethod) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return true
	}
	return false
}

// ParseHTTPMethod normalises a method name. Empty input yields POST.
func ParseHTTPMethod(raw string) (HTTPMethod, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return MethodPost, nil
	}
	method := HTTPMethod(trimmed)
	if !method.Valid() {
		return "", &ConfigurationError{Field: "httpMethod", Reason: "unsupported method " + quote(raw)}
	}
	return method, nil
}

// Normalize trims names and fills option defaults without validating.
func (s ArtifactSpec) Normalize() ArtifactSpec {
	out := s.Clone()
	out.Kind = ArtifactKind(strings.TrimSpace(string(out.Kind)))
	out.Name = strings.TrimSpace(out.Name)
	for i := range out.Fields {
		out.Fields[i].Name = strings.TrimSpace(out.Fields[i].Name)
		out.Fields[i].Type = TypeTag(strings.ToLower(strings.TrimSpace(string(out.Fields[i].Type))))
		out.Fields[i].Label = strings.TrimSpace(out.Fields[i].Label)
	}
	if out.Options.HTTPMethod == "" {
		out.Options.HTTPMethod = MethodPost
	} else {
		out.Options.HTTPMethod = HTTPMethod(strings.ToUpper(string(out.Options.HTTPMethod)))
	}
	if out.Options.SchemaType == "" {
		out.Options.SchemaType = SchemaObject
	}
	return out
}

// Validate checks the spec against the rules shared by every emitter. It does
// not check whether field types are renderable; emitters report that with
// UnsupportedFieldTypeError.
func (s ArtifactSpec) Validate() error {
	if !s.Kind.Valid() {
		return &ConfigurationError{Field: "kind", Reason: "unsupported artifact kind " + quote(string(s.Kind))}
	}
	if err := validateName("name", s.Name); err != nil {
		return err
	}
	if err := s.checkGeneratedNames(); err != nil {
		return err
	}
	if err := s.Options.validate(s.Kind); err != nil {
		return err
	}
	if len(s.Fields) == 0 && s.requiresFields() {
		return &ConfigurationError{Field: "fields", Reason: "at least one field is required"}
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for i, field := range s.Fields {
		label := fmt.Sprintf("fields[%d]", i)
		if err := validateFieldName(label, field.Name, s.Kind == KindAction); err != nil {
			return err
		}
		if s.Kind == KindAction {
			if err := clash(label, field.Name, actionParamIdentifiers); err != nil {
				return err
			}
		}
		if _, dup := seen[field.Name]; dup {
			return &ConfigurationError{Field: label, Reason: "duplicate field " + quote(field.Name)}
		}
		seen[field.Name] = struct{}{}
		if !field.Type.Valid() {
			return &ConfigurationError{Field: label, Reason: "unrecognised type tag " + quote(string(field.Type))}
		}
		if field.Type == TypeSelect && len(field.Options) == 0 {
			return &ConfigurationError{Field: label, Reason: "select field requires options"}
		}
	}
	return nil
}

func (s ArtifactSpec) requiresFields() bool {
	if s.Kind != KindSchema {
		return true
	}
	return s.Options.SchemaType == SchemaObject || s.Options.SchemaType == ""
}

func (o GenerationOptions) validate(kind ArtifactKind) error {
	if o.HTTPMethod != "" && !o.HTTPMethod.Valid() {
		return &ConfigurationError{Field: "httpMethod", Reason: "unsupported method " + quote(string(o.HTTPMethod))}
	}
	if kind != KindSchema {
		return nil
	}
	root := o.SchemaType
	if root == "" {
		root = SchemaObject
	}
	if !root.Valid() {
		return &ConfigurationError{Field: "schemaType", Reason: "unsupported schema type " + quote(string(root))}
	}
	if root == SchemaArray {
		if o.ArrayItemType == "" {
			return &ConfigurationError{Field: "arrayItemType", Reason: "array schemas require an item type"}
		}
		if !o.ArrayItemType.Valid() {
			return &ConfigurationError{Field: "arrayItemType", Reason: "unsupported item type " + quote(string(o.ArrayItemType))}
		}
	}
	return nil
}

func validateName(label, name string) error {
	switch {
	case name == "":
		return &ConfigurationError{Field: label, Reason: "name is required"}
	case !IsIdentifier(name):
		return &ConfigurationError{Field: label, Reason: quote(name) + " is not a valid identifier"}
	case IsReserved(name):
		return &ConfigurationError{Field: label, Reason: quote(name) + " is a reserved word"}
	}
	return nil
}

// Field names become object keys everywhere, and parameters for actions, so
// reserved words are only rejected for actions.
func validateFieldName(label, name string, parameter bool) error {
	if name == "" {
		return &ConfigurationError{Field: label, Reason: "name is required"}
	}
	if !IsIdentifier(name) {
		return &ConfigurationError{Field: label, Reason: quote(name) + " is not a valid identifier"}
	}
	if parameter && IsReserved(name) {
		return &ConfigurationError{Field: label, Reason: quote(name) + " is a reserved word"}
	}
	return nil
}
