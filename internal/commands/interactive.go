package commands

import (
	"context"

	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/orchestrator"
	"github.com/goliatone/go-zodform/pkg/prompt"
	"github.com/goliatone/go-zodform/pkg/render"
)

// InteractiveOptions are the flags of `zodform interactive`.
type InteractiveOptions struct {
	// Kind skips the generator menu when set.
	Kind           model.ArtifactKind
	ComponentsPath string
	Output         OutputOptions
}

// Interactive collects a spec through prompts, prints the generated sources
// and offers to save them when no output directory was given.
func (c *Controller) Interactive(ctx context.Context, opts InteractiveOptions) error {
	driver := c.driver()
	collector := prompt.NewCollector(driver)

	var (
		spec model.ArtifactSpec
		err  error
	)
	if opts.Kind != "" {
		spec, err = collector.CollectKind(ctx, opts.Kind)
	} else {
		spec, err = collector.Collect(ctx)
	}
	if err != nil {
		return err
	}

	artifacts, err := c.generate(ctx, "", orchestrator.Request{
		Spec:          spec,
		RenderOptions: render.Options{ComponentsPath: opts.ComponentsPath},
	})
	if err != nil {
		return err
	}
	if opts.Output.Dir != "" {
		return c.emit(artifacts, opts.Output)
	}

	if err := printArtifacts(c.out(), artifacts); err != nil {
		return err
	}
	save, err := driver.Confirm(ctx, prompt.ConfirmConfig{Message: "Save generated files?", Default: false})
	if err != nil || !save {
		return err
	}
	dir, err := driver.Input(ctx, prompt.InputConfig{Message: "Output directory", Default: c.Config.OutputDir})
	if err != nil {
		return err
	}
	if dir == "" {
		dir = c.Config.OutputDir
	}
	if err := c.emit(artifacts, OutputOptions{Dir: dir, Overwrite: opts.Output.Overwrite}); err != nil {
		return err
	}
	return driver.Info(ctx, "Saved to "+dir)
}
