package commands

import (
	"context"

	"github.com/goliatone/go-zodform/internal/server"
)

// Serve runs the HTTP API until ctx is cancelled. An empty addr uses
// Config.ServerAddr.
func (c *Controller) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = c.Config.ServerAddr
	}
	orch, err := c.orchestrator("")
	if err != nil {
		return err
	}
	srv := server.New(
		server.WithLogger(c.Logger),
		server.WithOrchestrator(orch),
		server.WithDefaults(c.Config.Options()),
		server.WithRenderOptions(c.Config.RenderOptions()),
	)
	return srv.Run(ctx, addr)
}
