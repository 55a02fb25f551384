package cli

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"github.com/visarcu/heatmap/internal/server"
)

// serveCommand creates the serve command, the HTTP API over the pipeline.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve heatmaps over HTTP",
		Long: `Serve heatmaps over HTTP.

Endpoints:
  GET  /healthz               liveness probe
  POST /v1/layout             lay out arbitrary weighted items
  GET  /v1/heatmap            render a heatmap from query parameters
  POST /v1/renders            render and store a heatmap, returns its URLs
  GET  /v1/renders/{id}.{fmt} fetch a stored render

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  heatmap serve --addr :9000
  curl 'localhost:8080/v1/heatmap?universe=dax&format=png' -o dax.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.config().Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	cfg := c.config()
	defaults := c.baseOptions()
	defaults.Universe = cfg.Layout.Universe

	srv := server.New(runner, server.Options{
		Defaults:       defaults,
		RequestTimeout: cfg.RequestTimeout(),
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
	})

	printInfo("Serving heatmaps")
	printKeyValue("Address", StyleLink.Render(serverURL(addr)))
	printKeyValue("Cache", cfg.Cache.Backend)
	printKeyValue("Universe", StyleNumber.Render(defaults.Universe))

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return err
	}
	printSuccess("Server stopped")
	return nil
}

// serverURL turns a listen address such as ":8080" into a clickable URL.
func serverURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return "http://" + host + ":" + port
}
