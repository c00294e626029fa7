package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/goliatone/go-zodform"
	"github.com/goliatone/go-zodform/internal/openapi/parser"
	"github.com/goliatone/go-zodform/pkg/model"
	pkgopenapi "github.com/goliatone/go-zodform/pkg/openapi"
	"github.com/goliatone/go-zodform/pkg/orchestrator"
	"github.com/goliatone/go-zodform/pkg/render"
)

const remoteTimeout = 30 * time.Second

// OpenAPIOptions are the flags of `zodform openapi`.
type OpenAPIOptions struct {
	Source      string
	OperationID string
	Kind        model.ArtifactKind
	// Name overrides the operation id as the artifact name.
	Name           string
	ComponentsPath string
	Preset         string

	// MaxDocumentBytes caps the document read. Zero keeps the loader default.
	MaxDocumentBytes int64
	Output           OutputOptions
}

// OpenAPI derives an artifact from an operation's request body. Without an
// operation id it lists the operations instead.
func (c *Controller) OpenAPI(ctx context.Context, opts OpenAPIOptions) error {
	src, err := pkgopenapi.DetectSource(opts.Source)
	if err != nil {
		return err
	}
	loaderOptions := []pkgopenapi.LoaderOption{
		pkgopenapi.WithHTTPFallback(remoteTimeout),
		pkgopenapi.WithMaxDocumentBytes(opts.MaxDocumentBytes),
	}

	if opts.OperationID == "" {
		return c.listOperations(ctx, src, loaderOptions)
	}

	kind := opts.Kind
	if kind == "" {
		kind = model.KindSafeActionPair
	}
	spec, err := zodform.SpecFromOpenAPI(ctx, src, opts.OperationID, kind, opts.Name, loaderOptions...)
	if err != nil {
		return err
	}
	artifacts, err := c.generate(ctx, opts.Preset, orchestrator.Request{
		Spec:          spec,
		RenderOptions: render.Options{ComponentsPath: opts.ComponentsPath},
	})
	if err != nil {
		return err
	}
	return c.emit(artifacts, opts.Output)
}

func (c *Controller) listOperations(ctx context.Context, src pkgopenapi.Source, loaderOptions []pkgopenapi.LoaderOption) error {
	doc, err := zodform.NewLoader(loaderOptions...).Load(ctx, src)
	if err != nil {
		return err
	}
	operations, err := zodform.NewParser().Operations(ctx, doc)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out(), 0, 4, 2, ' ', 0)
	for _, id := range parser.OperationIDs(operations) {
		op := operations[id]
		body := "-"
		if len(op.RequestBody.Properties) > 0 {
			body = fmt.Sprintf("%d fields", len(op.RequestBody.Properties))
		}
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", id, op.Method, op.Path, body, op.Summary)
	}
	return tw.Flush()
}
