package zodform_test

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-zodform"
	"github.com/goliatone/go-zodform/pkg/model"
	pkgopenapi "github.com/goliatone/go-zodform/pkg/openapi"
	"github.com/goliatone/go-zodform/pkg/testsupport"
)

func TestGenerate_ServerAction(t *testing.T) {
	spec := model.NewBuilder(model.KindAction, "submitForm").
		Field("x", model.TypeString).
		Validation(false).
		Spec()

	artifacts, err := zodform.Generate(context.Background(), spec)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].Filename != "submitform_server_actions.ts" {
		t.Fatalf("unexpected artifacts %+v", artifacts)
	}
	testsupport.MustContain(t, artifacts[0].SourceText, "export async function submitForm(x: string) {")
}

func TestGenerate_ComponentsPath(t *testing.T) {
	spec := model.NewBuilder(model.KindForm, "ContactForm").Field("name", model.TypeText).Spec()

	artifacts, err := zodform.Generate(context.Background(), spec, zodform.WithComponentsPath("~/ui"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.MustContain(t, artifacts[0].SourceText, "from '~/ui/input'")

	artifacts, err = zodform.GenerateWithOptions(context.Background(), spec, zodform.RenderOptions{ComponentsPath: "@/lib/ui"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.MustContain(t, artifacts[0].SourceText, "from '@/lib/ui/input'")
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, kind := range []model.ArtifactKind{model.KindSchema, model.KindForm, model.KindAction, model.KindSafeActionPair} {
		fsys, err := zodform.EmbeddedTemplates(kind)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		matches, err := fs.Glob(fsys, "templates/*.tmpl")
		if err != nil || len(matches) == 0 {
			t.Fatalf("%s: expected embedded templates, got %v (%v)", kind, matches, err)
		}
	}
	if _, err := zodform.EmbeddedTemplates("widget"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestSpecFromOpenAPI_SafeActionPair(t *testing.T) {
	ctx := testsupport.Context()
	src := pkgopenapi.SourceFromFile(filepath.Join("testdata", "openapi.yaml"))

	spec, err := zodform.SpecFromOpenAPI(ctx, src, "createUser", model.KindSafeActionPair, "")
	if err != nil {
		t.Fatalf("spec from openapi: %v", err)
	}
	artifacts, err := zodform.Generate(ctx, spec)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("expected a pair, got %d artifacts", len(artifacts))
	}
	testsupport.MustAppearInOrder(t, artifacts[1].SourceText, `name="name"`, `name="email"`, `name="age"`)
	testsupport.MustContain(t, artifacts[1].SourceText,
		"import { createUser as createUserAction } from './createuser_server_actions'",
		"<FormLabel>Work email</FormLabel>",
		`<SelectItem value="admin">admin</SelectItem>`,
	)

	if _, err := zodform.SpecFromOpenAPI(ctx, src, "missing", model.KindSchema, ""); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}
