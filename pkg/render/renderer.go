package render

import (
	"context"

	"github.com/goliatone/go-zodform/pkg/model"
)

// Emitter converts a validated ArtifactSpec into one or more generated
// artifacts. Implementations must be pure: identical inputs yield
// byte-identical output.
type Emitter interface {
	Kind() model.ArtifactKind
	Emit(ctx context.Context, spec model.ArtifactSpec, options Options) ([]model.GeneratedArtifact, error)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc struct {
	ArtifactKind model.ArtifactKind
	Fn           func(ctx context.Context, spec model.ArtifactSpec, options Options) ([]model.GeneratedArtifact, error)
}

// Kind returns the artifact kind handled by the function.
func (f EmitterFunc) Kind() model.ArtifactKind { return f.ArtifactKind }

// Emit invokes the wrapped function.
func (f EmitterFunc) Emit(ctx context.Context, spec model.ArtifactSpec, options Options) ([]model.GeneratedArtifact, error) {
	return f.Fn(ctx, spec, options)
}
