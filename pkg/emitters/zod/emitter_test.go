package zod_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-zodform/pkg/emitters/zod"
	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/naming"
	"github.com/goliatone/go-zodform/pkg/render"
	"github.com/goliatone/go-zodform/pkg/testsupport"
)

func newEmitter(t *testing.T) *zod.Emitter {
	t.Helper()
	emitter, err := zod.New()
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}
	return emitter
}

func TestSchema_ObjectPreservesFieldOrder(t *testing.T) {
	emitter := newEmitter(t)

	got, err := emitter.Schema(model.SchemaObject, []model.FieldSpec{
		{Name: "email", Type: model.TypeString},
		{Name: "age", Type: model.TypeNumber},
	}, "")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	want := "import { z } from 'zod';\n\nconst schema = z.object({\n  email: z.string(),\n  age: z.number(),\n});\n"
	if got != want {
		t.Fatalf("schema mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestSchema_CompoundFieldsAreOpaque(t *testing.T) {
	emitter := newEmitter(t)

	got, err := emitter.Schema(model.SchemaObject, []model.FieldSpec{
		{Name: "tags", Type: model.TypeArray},
		{Name: "meta", Type: model.TypeObject},
		{Name: "extra", Type: model.TypeAny},
		{Name: "contact", Type: model.TypeEmail},
		{Name: "subscribed", Type: model.TypeCheckbox},
	}, "")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	testsupport.MustAppearInOrder(t, got,
		"tags: z.array(z.unknown()),",
		"meta: z.record(z.string(), z.unknown()),",
		"extra: z.any(),",
		"contact: z.string(),",
		"subscribed: z.boolean(),",
	)
	if n := testsupport.Count(got, "z.object("); n != 1 {
		t.Fatalf("expected one object literal, got %d", n)
	}
}

func TestSchema_ArrayAndScalar(t *testing.T) {
	emitter := newEmitter(t)

	array, err := emitter.Schema(model.SchemaArray, nil, model.SchemaNumber)
	if err != nil {
		t.Fatalf("array schema: %v", err)
	}
	testsupport.MustContain(t, array, "import { z } from 'zod';", "const schema = z.array(z.number());")

	scalar, err := emitter.Schema(model.SchemaBoolean, nil, "")
	if err != nil {
		t.Fatalf("scalar schema: %v", err)
	}
	testsupport.MustContain(t, scalar, "const schema = z.boolean();")
}

func TestSchema_Errors(t *testing.T) {
	emitter := newEmitter(t)

	if _, err := emitter.Schema(model.SchemaObject, nil, ""); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("empty object: expected configuration error, got %v", err)
	}
	if _, err := emitter.Schema(model.SchemaArray, nil, ""); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("array without item: expected configuration error, got %v", err)
	}
	_, err := emitter.Schema(model.SchemaObject, []model.FieldSpec{{Name: "id", Type: "uuid"}}, "")
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "id" {
		t.Fatalf("unknown tag: expected configuration error for field id, got %v", err)
	}
}

func TestSchema_Idempotent(t *testing.T) {
	emitter := newEmitter(t)
	fields := []model.FieldSpec{{Name: "email", Type: model.TypeString}}

	first, err := emitter.Schema(model.SchemaObject, fields, "")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	second, err := emitter.Schema(model.SchemaObject, fields, "")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if first != second {
		t.Fatalf("schema output is not stable")
	}
}

func TestEmit_NamesArtifact(t *testing.T) {
	emitter := newEmitter(t)
	spec := model.NewBuilder(model.KindSchema, "UserProfile").Field("email", model.TypeString).Spec()

	artifacts, err := emitter.Emit(testsupport.Context(), spec, render.Options{})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("expected one artifact, got %d", len(artifacts))
	}
	if artifacts[0].Filename != naming.Filename("UserProfile", naming.SuffixSchema) {
		t.Fatalf("unexpected filename %q", artifacts[0].Filename)
	}
	if artifacts[0].Language != model.LanguageTypeScript {
		t.Fatalf("unexpected language %q", artifacts[0].Language)
	}
}

func TestRequiredStringObject(t *testing.T) {
	got := zod.RequiredStringObject([]model.FieldSpec{
		{Name: "name", Type: model.TypeText},
		{Name: "bio", Type: model.TypeTextarea, Label: "About you"},
	})
	want := "z.object({\n  name: z.string().min(1, 'Name is required'),\n  bio: z.string().min(1, 'About you is required'),\n})"
	if got != want {
		t.Fatalf("object mismatch\nwant: %q\n got: %q", want, got)
	}
}
