package zodform

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-zodform/internal/openapi/loader"
	internalParser "github.com/goliatone/go-zodform/internal/openapi/parser"
	"github.com/goliatone/go-zodform/pkg/model"
	pkgopenapi "github.com/goliatone/go-zodform/pkg/openapi"
)

// NewLoader constructs an OpenAPI loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs an OpenAPI parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// SpecFromOpenAPI loads src, finds operationID, and derives an artifact spec
// of kind from its request body. An empty name uses the operation id.
func SpecFromOpenAPI(ctx context.Context, src pkgopenapi.Source, operationID string, kind model.ArtifactKind, name string, options ...pkgopenapi.LoaderOption) (model.ArtifactSpec, error) {
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return model.ArtifactSpec{}, err
	}
	operations, err := NewParser().Operations(ctx, doc)
	if err != nil {
		return model.ArtifactSpec{}, err
	}
	op, ok := operations[operationID]
	if !ok {
		return model.ArtifactSpec{}, fmt.Errorf("zodform: operation %q not found in %s", operationID, doc.Location())
	}
	return pkgopenapi.SpecFromOperation(op, kind, name)
}
