package openapi

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-zodform/pkg/model"
)

// Fields derives field specs from the properties of body, ordered as
// PropertyOrder. Form kinds receive input tags; schema and action kinds
// receive schema tags.
func Fields(body Schema, kind model.ArtifactKind) ([]model.FieldSpec, error) {
	if len(body.Properties) == 0 {
		if body.Ref != "" {
			return nil, fmt.Errorf("openapi: request body %s was not resolved", body.Ref)
		}
		return nil, &model.ConfigurationError{Field: "requestBody", Reason: "request body declares no properties"}
	}

	forForm := kind == model.KindForm || kind == model.KindSafeActionPair
	fields := make([]model.FieldSpec, 0, len(body.Properties))
	for _, name := range body.PropertyOrder() {
		property := body.Properties[name]
		var (
			field model.FieldSpec
			err   error
		)
		if forForm {
			field, err = inputField(name, property)
		} else {
			field = model.FieldSpec{Name: name, Type: model.TypeTag(schemaTypeFor(property))}
		}
		if err != nil {
			return nil, err
		}
		field.Label = strings.TrimSpace(property.Title)
		fields = append(fields, field)
	}
	return fields, nil
}

// SpecFromOperation builds an artifact spec for op. An empty name falls back to
// the operation id; unsupported methods fall back to POST.
func SpecFromOperation(op Operation, kind model.ArtifactKind, name string) (model.ArtifactSpec, error) {
	fields, err := Fields(op.RequestBody, kind)
	if err != nil {
		return model.ArtifactSpec{}, fmt.Errorf("openapi: operation %q: %w", op.ID, err)
	}
	if strings.TrimSpace(name) == "" {
		name = op.ID
	}

	builder := model.NewBuilder(kind, name).Fields(fields...)
	if method, err := model.ParseHTTPMethod(op.Method); err == nil {
		builder = builder.Method(method)
	}
	return builder.Build()
}

func schemaTypeFor(property Schema) model.SchemaType {
	switch property.Type {
	case "string":
		if isDateFormat(property.Format) {
			return model.SchemaDate
		}
		return model.SchemaString
	case "integer", "number":
		return model.SchemaNumber
	case "boolean":
		return model.SchemaBoolean
	case "array":
		return model.SchemaArray
	case "object":
		return model.SchemaObject
	default:
		return model.SchemaAny
	}
}

func inputField(name string, property Schema) (model.FieldSpec, error) {
	field := model.FieldSpec{Name: name}

	if widget := strings.ToLower(strings.TrimSpace(property.Widget)); widget != "" {
		tag := model.TypeTag(widget)
		if _, err := tag.InputType(); err != nil {
			return field, &model.UnsupportedFieldTypeError{Field: name, Type: tag, Target: "form input"}
		}
		field.Type = tag
		if tag == model.TypeSelect {
			field.Options = enumOptions(property.Enum)
		}
		return field, nil
	}

	if len(property.Enum) > 0 {
		field.Type = model.TypeSelect
		field.Options = enumOptions(property.Enum)
		return field, nil
	}

	switch property.Type {
	case "string":
		switch {
		case property.Format == "email":
			field.Type = model.TypeEmail
		case property.Format == "password":
			field.Type = model.TypePassword
		case isDateFormat(property.Format):
			field.Type = model.TypeDate
		default:
			field.Type = model.TypeText
		}
	case "integer", "number":
		field.Type = model.TypeNumber
	case "boolean":
		field.Type = model.TypeCheckbox
	default:
		kind := property.Type
		if kind == "" {
			kind = "any"
		}
		return field, &model.UnsupportedFieldTypeError{Field: name, Type: model.TypeTag(kind), Target: "form input"}
	}
	return field, nil
}

func isDateFormat(format string) bool {
	return format == "date" || format == "date-time"
}

func enumOptions(values []any) []string {
	options := make([]string, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		options = append(options, fmt.Sprint(value))
	}
	return options
}
