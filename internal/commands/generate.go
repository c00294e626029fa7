package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-zodform/pkg/orchestrator"
	"github.com/goliatone/go-zodform/pkg/render"
	"github.com/goliatone/go-zodform/pkg/specfile"
)

// GenerateOptions are the flags of `zodform generate`.
type GenerateOptions struct {
	// Dir overrides the spec file's outputDir.
	Dir            string
	Overwrite      bool
	Stdout         bool
	ComponentsPath string
	Preset         string
}

// Generate renders every artifact listed in the spec file at path.
func (c *Controller) Generate(ctx context.Context, path string, opts GenerateOptions) error {
	file, err := specfile.Load(path)
	if err != nil {
		return err
	}
	specs, err := file.Specs()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	renderOptions := file.RenderOptions()
	if opts.ComponentsPath != "" {
		renderOptions = render.Options{ComponentsPath: opts.ComponentsPath}
	}
	reqs := make([]orchestrator.Request, len(specs))
	for i, spec := range specs {
		reqs[i] = orchestrator.Request{Spec: spec, RenderOptions: renderOptions}
	}

	artifacts, err := c.generate(ctx, opts.Preset, reqs...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	c.Logger.Debug().Str("path", path).Int("artifacts", len(artifacts)).Msg("spec file rendered")

	if opts.Stdout {
		return c.emit(artifacts, OutputOptions{})
	}
	return c.emit(artifacts, OutputOptions{Dir: c.outputDir(path, file, opts), Overwrite: opts.Overwrite})
}

// outputDir resolves the flag, then the spec file's outputDir relative to the
// file, then Config.OutputDir.
func (c *Controller) outputDir(path string, file specfile.File, opts GenerateOptions) string {
	switch {
	case opts.Dir != "":
		return opts.Dir
	case file.OutputDir != "" && filepath.IsAbs(file.OutputDir):
		return file.OutputDir
	case file.OutputDir != "":
		return filepath.Join(filepath.Dir(path), file.OutputDir)
	default:
		return c.Config.OutputDir
	}
}
