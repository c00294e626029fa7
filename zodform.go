// Package zodform generates TypeScript sources for Next.js applications from
// declarative artifact specs: zod schemas, shadcn/ui forms, server actions,
// and next-safe-action pairs.
//
// Most callers need only Generate:
//
//	artifacts, err := zodform.Generate(ctx, model.NewBuilder(model.KindSchema, "User").
//		Field("email", model.TypeString).
//		Spec())
package zodform

import (
	"context"

	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/orchestrator"
	"github.com/goliatone/go-zodform/pkg/render"
)

// ArtifactSpec aliases model.ArtifactSpec.
type ArtifactSpec = model.ArtifactSpec

// GeneratedArtifact aliases model.GeneratedArtifact.
type GeneratedArtifact = model.GeneratedArtifact

// RenderOptions aliases render.Options.
type RenderOptions = render.Options

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate validates spec and renders it with the built-in emitters.
func Generate(ctx context.Context, spec ArtifactSpec, options ...orchestrator.Option) ([]GeneratedArtifact, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Spec: spec})
}

// GenerateWithOptions is Generate with per-call render options.
func GenerateWithOptions(ctx context.Context, spec ArtifactSpec, renderOptions RenderOptions, options ...orchestrator.Option) ([]GeneratedArtifact, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Spec: spec, RenderOptions: renderOptions})
}

// WithComponentsPath forwards the shadcn/ui import base to the orchestrator.
func WithComponentsPath(path string) orchestrator.Option {
	return orchestrator.WithComponentsPath(path)
}
