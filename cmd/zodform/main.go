package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-zodform/internal/commands"
	"github.com/goliatone/go-zodform/internal/config"
	"github.com/goliatone/go-zodform/pkg/model"
	pkgopenapi "github.com/goliatone/go-zodform/pkg/openapi"
	"github.com/goliatone/go-zodform/pkg/prompt"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}
	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctrl := &commands.Controller{Out: os.Stdout}

	app := &cli.Command{
		Name:    "zodform",
		Usage:   "Generate zod schemas, shadcn/ui forms and Next.js server actions",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("ZODFORM_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a config file (default: nearest " + config.FileName + ")",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return ctx, err
			}
			if c.IsSet("log-level") {
				cfg.LogLevel = c.String("log-level")
			}
			level, err := cfg.Level()
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Config = cfg
			ctrl.Logger = log.Logger
			return ctx, nil
		},
		Commands: []*cli.Command{
			kindCommand(ctrl, "schema", model.KindSchema, "Generate a zod schema",
				&cli.StringFlag{Name: "schema-type", Usage: "root type: object, array, string, number, boolean, date, any"},
				&cli.StringFlag{Name: "item-type", Usage: "array item type when --schema-type=array"},
			),
			kindCommand(ctrl, "form", model.KindForm, "Generate a shadcn/ui form component",
				&cli.BoolFlag{Name: "validation", Usage: "wire a zod resolver into the form"},
			),
			kindCommand(ctrl, "action", model.KindAction, "Generate a server action",
				&cli.BoolFlag{Name: "validation", Usage: "validate parameters with zod"},
				&cli.BoolFlag{Name: "typed-params", Usage: "annotate parameter types"},
				&cli.StringFlag{Name: "method", Usage: "documented HTTP method: GET, POST, PUT, DELETE"},
			),
			kindCommand(ctrl, "safe-action", model.KindSafeActionPair, "Generate a next-safe-action action and its form"),
			{
				Name:      "generate",
				Usage:     "Render every artifact listed in a spec file (.yaml, .json or .cue)",
				ArgsUsage: "<spec-file>",
				Flags: append(outputFlags(),
					&cli.BoolFlag{Name: "stdout", Usage: "print instead of writing files"},
					&cli.StringFlag{Name: "components-path", Usage: "shadcn/ui import base"},
					&cli.StringFlag{Name: "preset", Usage: "YAML or JSON preset applied to every artifact"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("generate: expected one spec file, got %d", c.Args().Len())
					}
					return ctrl.Generate(ctx, c.Args().First(), generateOptions(c))
				},
			},
			{
				Name:      "watch",
				Usage:     "Regenerate spec files whenever they change",
				ArgsUsage: "<spec-file|dir>...",
				Flags: append(outputFlags(),
					&cli.StringFlag{Name: "components-path", Usage: "shadcn/ui import base"},
					&cli.StringFlag{Name: "preset", Usage: "YAML or JSON preset applied to every artifact"},
					&cli.DurationFlag{Name: "debounce", Usage: "wait for events to settle", Value: 100 * time.Millisecond},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx, c.Args().Slice(), commands.WatchOptions{
						Generate: generateOptions(c),
						Debounce: c.Duration("debounce"),
					})
				},
			},
			{
				Name:  "interactive",
				Usage: "Build an artifact through terminal prompts",
				Flags: append(outputFlags(),
					&cli.StringFlag{Name: "kind", Usage: "skip the menu: schema, form, action, safe-action-pair"},
					&cli.StringFlag{Name: "components-path", Usage: "shadcn/ui import base"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Interactive(ctx, commands.InteractiveOptions{
						Kind:           model.ArtifactKind(c.String("kind")),
						ComponentsPath: c.String("components-path"),
						Output:         outputOptions(c),
					})
				},
			},
			{
				Name:  "openapi",
				Usage: "Derive an artifact from an OpenAPI operation (lists operations without --operation)",
				Flags: append(outputFlags(),
					&cli.StringFlag{Name: "source", Usage: "OpenAPI document path or URL", Required: true},
					&cli.StringFlag{Name: "operation", Usage: "operationId to convert"},
					&cli.StringFlag{Name: "kind", Usage: "artifact kind", Value: string(model.KindSafeActionPair)},
					&cli.StringFlag{Name: "name", Usage: "artifact name (default: the operation id)"},
					&cli.StringFlag{Name: "components-path", Usage: "shadcn/ui import base"},
					&cli.StringFlag{Name: "preset", Usage: "YAML or JSON preset"},
					&cli.IntFlag{Name: "max-bytes", Usage: "reject documents larger than this", Value: pkgopenapi.DefaultMaxDocumentBytes},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.OpenAPI(ctx, commands.OpenAPIOptions{
						Source:           c.String("source"),
						OperationID:      c.String("operation"),
						Kind:             model.ArtifactKind(c.String("kind")),
						Name:             c.String("name"),
						ComponentsPath:   c.String("components-path"),
						Preset:           c.String("preset"),
						MaxDocumentBytes: c.Int("max-bytes"),
						Output:           outputOptions(c),
					})
				},
			},
			{
				Name:  "serve",
				Usage: "Serve the generators over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address", Sources: cli.EnvVars("ZODFORM_SERVER_ADDR")},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Serve(ctx, c.String("addr"))
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("zodform failed")
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	cfg, _, err := config.Load(".")
	return cfg, err
}

func kindCommand(ctrl *commands.Controller, name string, kind model.ArtifactKind, usage string, extra ...cli.Flag) *cli.Command {
	flags := append(outputFlags(),
		&cli.StringFlag{Name: "name", Usage: "artifact name", Value: prompt.DefaultName(kind)},
		&cli.StringSliceFlag{Name: "field", Aliases: []string{"f"}, Usage: "field as name:type[:option|option] (repeatable)"},
		&cli.StringFlag{Name: "components-path", Usage: "shadcn/ui import base"},
		&cli.StringFlag{Name: "preset", Usage: "YAML or JSON preset"},
	)
	flags = append(flags, extra...)

	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return ctrl.Kind(ctx, commands.KindOptions{
				Kind:           kind,
				Name:           c.String("name"),
				Fields:         c.StringSlice("field"),
				UseValidation:  optionalBool(c, "validation"),
				TypedParams:    optionalBool(c, "typed-params"),
				Method:         c.String("method"),
				SchemaType:     c.String("schema-type"),
				ArrayItemType:  c.String("item-type"),
				ComponentsPath: c.String("components-path"),
				Preset:         c.String("preset"),
				Output:         outputOptions(c),
			})
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory"},
		&cli.BoolFlag{Name: "overwrite", Usage: "replace existing files"},
	}
}

func outputOptions(c *cli.Command) commands.OutputOptions {
	return commands.OutputOptions{Dir: c.String("out"), Overwrite: c.Bool("overwrite")}
}

func generateOptions(c *cli.Command) commands.GenerateOptions {
	return commands.GenerateOptions{
		Dir:            c.String("out"),
		Overwrite:      c.Bool("overwrite"),
		Stdout:         c.Bool("stdout"),
		ComponentsPath: c.String("components-path"),
		Preset:         c.String("preset"),
	}
}

// optionalBool returns nil unless the flag was given, so config defaults
// apply.
func optionalBool(c *cli.Command, name string) *bool {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Bool(name)
	return &v
}
