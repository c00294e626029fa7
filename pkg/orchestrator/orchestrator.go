package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-zodform/pkg/emitters/action"
	"github.com/goliatone/go-zodform/pkg/emitters/safeaction"
	"github.com/goliatone/go-zodform/pkg/emitters/shadcn"
	"github.com/goliatone/go-zodform/pkg/emitters/zod"
	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/render"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects an emitter registry. The built-in emitters are not
// registered into a caller-supplied registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithLogger sets the logger used for debug traces of each generation.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithRenderOptions sets the render options used when a request carries the
// zero value.
func WithRenderOptions(options render.Options) Option {
	return func(o *Orchestrator) {
		o.renderOptions = options
	}
}

// WithComponentsPath overrides the shadcn/ui import base.
func WithComponentsPath(path string) Option {
	return func(o *Orchestrator) {
		o.renderOptions.ComponentsPath = path
	}
}

// WithTransformer registers a Transformer that runs after normalisation and
// before validation.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator validates artifact specs and dispatches them to the emitter
// registered for their kind. The zero configuration registers the zod,
// shadcn, action and safe-action emitters.
type Orchestrator struct {
	registry      *render.Registry
	logger        zerolog.Logger
	renderOptions render.Options
	transformer   Transformer
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation call.
type Request struct {
	Spec model.ArtifactSpec

	// RenderOptions overrides the orchestrator-level render options when it
	// carries a non-empty ComponentsPath.
	RenderOptions render.Options
}

// Generate normalises and validates the request spec, then renders it with
// the matching emitter. Nothing is returned on error.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]model.GeneratedArtifact, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	spec := req.Spec.Normalize()
	if err := o.applyTransformer(ctx, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	emitter, err := o.emitterFor(spec.Kind)
	if err != nil {
		return nil, err
	}

	options := o.renderOptions
	if req.RenderOptions.ComponentsPath != "" {
		options = req.RenderOptions
	}

	artifacts, err := emitter.Emit(ctx, spec, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: emit %s %q: %w", spec.Kind, spec.Name, err)
	}

	o.logger.Debug().
		Str("kind", string(spec.Kind)).
		Str("name", spec.Name).
		Int("fields", len(spec.Fields)).
		Int("artifacts", len(artifacts)).
		Msg("generated artifacts")
	return artifacts, nil
}

// GenerateAll runs Generate for every request in order and concatenates the
// results. The first failure aborts the batch.
func (o *Orchestrator) GenerateAll(ctx context.Context, reqs ...Request) ([]model.GeneratedArtifact, error) {
	var out []model.GeneratedArtifact
	for i, req := range reqs {
		artifacts, err := o.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: request %d: %w", i, err)
		}
		out = append(out, artifacts...)
	}
	return out, nil
}

// Kinds lists the artifact kinds the orchestrator can render.
func (o *Orchestrator) Kinds() []model.ArtifactKind {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) emitterFor(kind model.ArtifactKind) (render.Emitter, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: emitter registry is nil")
	}
	emitter, err := o.registry.Get(kind)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return emitter, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, spec *model.ArtifactSpec) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, spec); err != nil {
		return fmt.Errorf("orchestrator: transform spec: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry != nil {
		return
	}
	o.registry = render.NewRegistry()
	if err := RegisterDefaults(o.registry); err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default emitters: %w", err)
	}
}

// RegisterDefaults registers the zod, shadcn, action and safe-action emitters.
func RegisterDefaults(registry *render.Registry) error {
	schemaEmitter, err := zod.New()
	if err != nil {
		return err
	}
	formEmitter, err := shadcn.New()
	if err != nil {
		return err
	}
	actionEmitter, err := action.New()
	if err != nil {
		return err
	}
	pairEmitter, err := safeaction.New()
	if err != nil {
		return err
	}
	for _, emitter := range []render.Emitter{schemaEmitter, formEmitter, actionEmitter, pairEmitter} {
		if err := registry.Register(emitter); err != nil {
			return err
		}
	}
	return nil
}
