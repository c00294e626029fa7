// Package commands implements the zodform CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-zodform/internal/config"
	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/orchestrator"
	"github.com/goliatone/go-zodform/pkg/output"
	"github.com/goliatone/go-zodform/pkg/prompt"
)

// Controller holds the state shared by every subcommand.
type Controller struct {
	Config config.Config
	Logger zerolog.Logger
	// Out receives generated sources and written paths.
	Out io.Writer
	// Driver answers interactive prompts. Nil means a survey terminal driver.
	Driver prompt.Driver
}

// NewController returns a Controller writing to stdout.
func NewController(cfg config.Config, logger zerolog.Logger) *Controller {
	return &Controller{Config: cfg, Logger: logger, Out: os.Stdout}
}

// OutputOptions controls where generated artifacts go.
type OutputOptions struct {
	// Dir is the output directory. Empty prints to Out.
	Dir       string
	Overwrite bool
}

func (c *Controller) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Controller) driver() prompt.Driver {
	if c.Driver == nil {
		return prompt.NewSurveyDriver(c.out())
	}
	return c.Driver
}

// orchestrator builds an orchestrator configured from Config. A non-empty
// preset path attaches a preset transformer.
func (c *Controller) orchestrator(preset string) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithLogger(c.Logger),
		orchestrator.WithRenderOptions(c.Config.RenderOptions()),
	}
	if preset != "" {
		transformer, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(preset)), filepath.Base(preset))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(transformer))
	}
	return orchestrator.New(options...), nil
}

// emit prints artifacts or writes them under opts.Dir.
func (c *Controller) emit(artifacts []model.GeneratedArtifact, opts OutputOptions) error {
	if opts.Dir == "" {
		return printArtifacts(c.out(), artifacts)
	}
	writer := output.NewWriter(opts.Dir, output.WithOverwrite(opts.Overwrite || c.Config.Overwrite))
	paths, err := writer.WriteAll(artifacts)
	if err != nil {
		return err
	}
	for _, path := range paths {
		c.Logger.Info().Str("path", path).Msg("wrote artifact")
		if _, err := fmt.Fprintln(c.out(), path); err != nil {
			return err
		}
	}
	return nil
}

func printArtifacts(w io.Writer, artifacts []model.GeneratedArtifact) error {
	for i, artifact := range artifacts {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "// %s\n%s", artifact.Filename, artifact.SourceText); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) generate(ctx context.Context, preset string, reqs ...orchestrator.Request) ([]model.GeneratedArtifact, error) {
	orch, err := c.orchestrator(preset)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 1 {
		return orch.Generate(ctx, reqs[0])
	}
	return orch.GenerateAll(ctx, reqs...)
}
