package orchestrator_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/orchestrator"
	"github.com/goliatone/go-zodform/pkg/render"
	"github.com/goliatone/go-zodform/pkg/testsupport"
)

func TestOrchestrator_SchemaGolden(t *testing.T) {
	spec := testsupport.MustLoadSpec(t, filepath.Join("testdata", "user_schema.json"))

	artifacts, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{Spec: spec})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("expected one artifact, got %d", len(artifacts))
	}

	goldenPath := filepath.Join("testdata", "user_schema.golden.ts")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(artifacts[0].SourceText)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, artifacts[0].SourceText); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
	if artifacts[0].Filename != "userschema_schema.ts" || artifacts[0].Language != model.LanguageTypeScript {
		t.Fatalf("unexpected artifact metadata %+v", artifacts[0])
	}
}

func TestOrchestrator_DefaultKinds(t *testing.T) {
	got := orchestrator.New().Kinds()
	want := []model.ArtifactKind{model.KindAction, model.KindForm, model.KindSafeActionPair, model.KindSchema}
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_EveryKind(t *testing.T) {
	orch := orchestrator.New()
	cases := []struct {
		spec      model.ArtifactSpec
		filenames []string
	}{
		{
			spec:      model.NewBuilder(model.KindSchema, "Profile").Field("bio", model.TypeString).Spec(),
			filenames: []string{"profile_schema.ts"},
		},
		{
			spec:      model.NewBuilder(model.KindForm, "ContactForm").Field("name", model.TypeText).Spec(),
			filenames: []string{"contactform_form.tsx"},
		},
		{
			spec:      model.NewBuilder(model.KindAction, "submitForm").Field("x", model.TypeString).Spec(),
			filenames: []string{"submitform_server_actions.ts"},
		},
		{
			spec:      model.NewBuilder(model.KindSafeActionPair, "createUser").Field("name", model.TypeText).Spec(),
			filenames: []string{"createuser_server_actions.ts", "createuser_form.tsx"},
		},
	}

	for _, tc := range cases {
		t.Run(string(tc.spec.Kind), func(t *testing.T) {
			artifacts, err := orch.Generate(testsupport.Context(), orchestrator.Request{Spec: tc.spec})
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			got := make([]string, len(artifacts))
			for i, artifact := range artifacts {
				got[i] = artifact.Filename
			}
			if diff := testsupport.CompareGolden(tc.filenames, got); diff != "" {
				t.Fatalf("filenames mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrchestrator_NormalisesBeforeValidating(t *testing.T) {
	spec := model.ArtifactSpec{
		Kind:   model.KindAction,
		Name:   "  save ",
		Fields: []model.FieldSpec{{Name: " id ", Type: "  NUMBER"}},
		Options: model.GenerationOptions{
			HTTPMethod:  "put",
			TypedParams: true,
		},
	}

	artifacts, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{Spec: spec})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.MustContain(t, artifacts[0].SourceText, "export async function save(id: number) {", "Handles PUT submissions.")
	if spec.Name != "  save " {
		t.Fatalf("caller spec was mutated: %q", spec.Name)
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	orch := orchestrator.New()
	ctx := testsupport.Context()

	cases := map[string]struct {
		spec   model.ArtifactSpec
		target error
	}{
		"unknown kind": {
			spec:   model.ArtifactSpec{Kind: "widget", Name: "x"},
			target: model.ErrConfiguration,
		},
		"empty form": {
			spec:   model.NewBuilder(model.KindForm, "EmptyForm").Spec(),
			target: model.ErrConfiguration,
		},
		"schema-only tag in form": {
			spec:   model.NewBuilder(model.KindForm, "MetaForm").Field("meta", model.TypeObject).Spec(),
			target: model.ErrUnsupportedFieldType,
		},
		"reserved action param": {
			spec:   model.NewBuilder(model.KindAction, "save").Field("class", model.TypeString).Spec(),
			target: model.ErrConfiguration,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			artifacts, err := orch.Generate(ctx, orchestrator.Request{Spec: tc.spec})
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
			if artifacts != nil {
				t.Fatalf("expected no artifacts on error, got %+v", artifacts)
			}
		})
	}
}

func TestOrchestrator_ContextHandling(t *testing.T) {
	orch := orchestrator.New()
	spec := model.NewBuilder(model.KindSchema, "Profile").Field("bio", model.TypeString).Spec()

	//nolint:staticcheck // exercising the nil guard
	if _, err := orch.Generate(nil, orchestrator.Request{Spec: spec}); err == nil {
		t.Fatalf("expected error for nil context")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, orchestrator.Request{Spec: spec}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOrchestrator_CustomRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(render.EmitterFunc{
		ArtifactKind: model.KindSchema,
		Fn: func(_ context.Context, spec model.ArtifactSpec, _ render.Options) ([]model.GeneratedArtifact, error) {
			return []model.GeneratedArtifact{model.NewArtifact(spec.Name+".ts", "// stub\n")}, nil
		},
	})
	orch := orchestrator.New(orchestrator.WithRegistry(registry))

	artifacts, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Spec: model.NewBuilder(model.KindSchema, "Stub").Field("a", model.TypeString).Spec(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if artifacts[0].SourceText != "// stub\n" {
		t.Fatalf("custom emitter not used: %+v", artifacts)
	}

	_, err = orch.Generate(testsupport.Context(), orchestrator.Request{
		Spec: model.NewBuilder(model.KindForm, "Missing").Field("a", model.TypeText).Spec(),
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected missing emitter error, got %v", err)
	}
}

func TestOrchestrator_ComponentsPath(t *testing.T) {
	spec := model.NewBuilder(model.KindForm, "ContactForm").Field("name", model.TypeText).Spec()

	orch := orchestrator.New(orchestrator.WithComponentsPath("~/ui"))
	artifacts, err := orch.Generate(testsupport.Context(), orchestrator.Request{Spec: spec})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.MustContain(t, artifacts[0].SourceText, "from '~/ui/button'")

	artifacts, err = orch.Generate(testsupport.Context(), orchestrator.Request{
		Spec:          spec,
		RenderOptions: render.Options{ComponentsPath: "@/shadcn"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.MustContain(t, artifacts[0].SourceText, "from '@/shadcn/button'")
}

func TestOrchestrator_GenerateAll(t *testing.T) {
	orch := orchestrator.New()
	artifacts, err := orch.GenerateAll(testsupport.Context(),
		orchestrator.Request{Spec: model.NewBuilder(model.KindSchema, "A").Field("a", model.TypeString).Spec()},
		orchestrator.Request{Spec: model.NewBuilder(model.KindSafeActionPair, "b").Field("b", model.TypeText).Spec()},
	)
	if err != nil {
		t.Fatalf("generate all: %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("expected three artifacts, got %d", len(artifacts))
	}

	_, err = orch.GenerateAll(testsupport.Context(),
		orchestrator.Request{Spec: model.NewBuilder(model.KindSchema, "A").Field("a", model.TypeString).Spec()},
		orchestrator.Request{Spec: model.NewBuilder(model.KindForm, "B").Spec()},
	)
	if !errors.Is(err, model.ErrConfiguration) || !strings.Contains(err.Error(), "request 1") {
		t.Fatalf("expected failure on request 1, got %v", err)
	}
}

func TestOrchestrator_LogsGeneration(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	orch := orchestrator.New(orchestrator.WithLogger(logger))
	_, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Spec: model.NewBuilder(model.KindSchema, "Logged").Field("a", model.TypeString).Spec(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.MustContain(t, buf.String(), `"kind":"schema"`, `"name":"Logged"`, `"artifacts":1`)
}
