package action_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-zodform/pkg/emitters/action"
	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/render"
	"github.com/goliatone/go-zodform/pkg/testsupport"
)

func newEmitter(t *testing.T) *action.Emitter {
	t.Helper()
	emitter, err := action.New()
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}
	return emitter
}

func TestAction_SubmitFormWithoutValidation(t *testing.T) {
	emitter := newEmitter(t)

	got, err := emitter.Action("submitForm", model.MethodPost, []model.FieldSpec{{Name: "x", Type: model.TypeString}}, false, true)
	if err != nil {
		t.Fatalf("action: %v", err)
	}

	want := "'use server'\n\n/**\n * Handles POST submissions.\n */\nexport async function submitForm(x: string) {\n" +
		"  console.log('Received data:', { x })\n\n" +
		"  return { success: true, message: 'Data processed successfully' }\n}\n"
	if got != want {
		t.Fatalf("action mismatch\nwant: %q\n got: %q", want, got)
	}
	testsupport.MustNotContain(t, got, "zod", "z.object(")
}

func TestAction_WithValidation(t *testing.T) {
	emitter := newEmitter(t)
	params := []model.FieldSpec{
		{Name: "email", Type: model.TypeString},
		{Name: "age", Type: model.TypeNumber},
		{Name: "tags", Type: model.TypeArray},
	}

	got, err := emitter.Action("createUser", model.MethodPut, params, true, true)
	if err != nil {
		t.Fatalf("action: %v", err)
	}

	testsupport.MustAppearInOrder(t, got,
		"import { z } from 'zod'",
		"const inputSchema = z.object({",
		"  email: z.string(),",
		"  age: z.number(),",
		"  tags: z.array(z.unknown()),",
		" * Handles PUT submissions.",
		"export async function createUser(email: string, age: number, tags: unknown[]) {",
		"const validatedInput = inputSchema.parse({ email, age, tags })",
		"return { success: true, message: 'Data processed successfully' }",
	)
	if n := testsupport.Count(got, "z.object("); n != 1 {
		t.Fatalf("expected one schema literal, got %d", n)
	}
}

func TestAction_UntypedParams(t *testing.T) {
	emitter := newEmitter(t)

	got, err := emitter.Action("save", model.MethodPost, []model.FieldSpec{
		{Name: "a", Type: model.TypeString},
		{Name: "b", Type: model.TypeDate},
	}, false, false)
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	testsupport.MustContain(t, got, "export async function save(a, b) {", "console.log('Received data:', { a, b })")
}

func TestAction_TypeMapping(t *testing.T) {
	cases := map[model.TypeTag]string{
		model.TypeString:   "string",
		model.TypeEmail:    "string",
		model.TypeNumber:   "number",
		model.TypeCheckbox: "boolean",
		model.TypeDate:     "Date",
		model.TypeAny:      "any",
		model.TypeObject:   "Record<string, unknown>",
	}
	for tag, want := range cases {
		got, err := action.TSType(tag)
		if err != nil || got != want {
			t.Fatalf("TSType(%q) = %q, %v; want %q", tag, got, err, want)
		}
	}
}

func TestAction_Errors(t *testing.T) {
	emitter := newEmitter(t)

	if _, err := emitter.Action("save", "PATCH", []model.FieldSpec{{Name: "a", Type: model.TypeString}}, false, true); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("bad method: expected configuration error, got %v", err)
	}
	if _, err := emitter.Action("save", model.MethodPost, []model.FieldSpec{{Name: "a", Type: "uuid"}}, false, true); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("bad type: expected configuration error, got %v", err)
	}
}

func TestEmit_ServerActionsFilename(t *testing.T) {
	emitter := newEmitter(t)
	spec := model.NewBuilder(model.KindAction, "submitForm").Field("x", model.TypeString).Spec()

	first, err := emitter.Emit(testsupport.Context(), spec, render.Options{})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	second, err := emitter.Emit(testsupport.Context(), spec, render.Options{})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if first[0].Filename != "submitform_server_actions.ts" {
		t.Fatalf("unexpected filename %q", first[0].Filename)
	}
	if first[0].SourceText != second[0].SourceText {
		t.Fatalf("action output is not stable")
	}
}
