package commands

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/goliatone/go-zodform/internal/watch"
)

// WatchOptions are the flags of `zodform watch`.
type WatchOptions struct {
	Generate GenerateOptions
	Debounce time.Duration
}

// Watch regenerates spec files under paths whenever they change. Files named
// directly are rendered once before watching starts. Regeneration always
// overwrites.
func (c *Controller) Watch(ctx context.Context, paths []string, opts WatchOptions) error {
	if len(paths) == 0 {
		return errors.New("watch: at least one path is required")
	}
	generate := opts.Generate
	generate.Overwrite = true
	generate.Stdout = false

	watcher, err := watch.New(func(ctx context.Context, path string) error {
		return c.Generate(ctx, path, generate)
	}, watch.WithLogger(c.Logger), watch.WithDebounce(opts.Debounce))
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return err
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			if err := c.Generate(ctx, path, generate); err != nil {
				c.Logger.Error().Err(err).Str("path", path).Msg("initial generation failed")
			}
		}
	}
	c.Logger.Info().Strs("paths", paths).Msg("watching spec files")

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
