package zod

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/render"
	"github.com/goliatone/go-zodform/pkg/render/writer"
)

// ImportStatement is the zod import emitted by every artifact that declares a
// schema.
const ImportStatement = "import { z } from 'zod'"

// Compound types are opaque: their members are never expanded.
var validators = map[model.SchemaType]string{
	model.SchemaString:  "z.string()",
	model.SchemaNumber:  "z.number()",
	model.SchemaBoolean: "z.boolean()",
	model.SchemaDate:    "z.date()",
	model.SchemaAny:     "z.any()",
	model.SchemaArray:   "z.array(z.unknown())",
	model.SchemaObject:  "z.record(z.string(), z.unknown())",
}

// Validator returns the zod call for a schema type.
func Validator(schemaType model.SchemaType) (string, error) {
	call, ok := validators[schemaType]
	if !ok {
		return "", &model.ConfigurationError{Field: "type", Reason: fmt.Sprintf("unrecognised schema type %q", schemaType)}
	}
	return call, nil
}

// ValidatorForTag resolves tag through the input mapping table and returns
// its zod call.
func ValidatorForTag(tag model.TypeTag) (string, error) {
	schemaType, err := tag.SchemaType()
	if err != nil {
		return "", err
	}
	return Validator(schemaType)
}

// ArrayOf returns the zod call for an array of item.
func ArrayOf(item model.SchemaType) (string, error) {
	call, err := Validator(item)
	if err != nil {
		return "", err
	}
	return "z.array(" + call + ")", nil
}

// ObjectLiteral renders z.object({...}) with one property per field, in
// order, each typed by the field's declared type.
func ObjectLiteral(fields []model.FieldSpec) (string, error) {
	w := writer.New(writer.DefaultIndent)
	var failed error
	w.WriteBlock("z.object({", "})", func() {
		for _, field := range fields {
			call, err := ValidatorForTag(field.Type)
			if err != nil {
				if failed == nil {
					failed = fieldError(field, err)
				}
				return
			}
			w.WriteLinef("%s: %s,", field.Name, call)
		}
	})
	if failed != nil {
		return "", failed
	}
	return trimNewline(w.String()), nil
}

// RequiredStringObject renders z.object({...}) treating every field as a
// required string, the validation shape used by generated forms.
func RequiredStringObject(fields []model.FieldSpec) string {
	w := writer.New(writer.DefaultIndent)
	w.WriteBlock("z.object({", "})", func() {
		for _, field := range fields {
			message := render.QuoteString(field.LabelText() + " is required")
			w.WriteLinef("%s: z.string().min(1, %s),", field.Name, message)
		}
	})
	return trimNewline(w.String())
}

func fieldError(field model.FieldSpec, err error) error {
	var cfg *model.ConfigurationError
	if errors.As(err, &cfg) {
		return &model.ConfigurationError{Field: field.Name, Reason: cfg.Reason}
	}
	return err
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}
