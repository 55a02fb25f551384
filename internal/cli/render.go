package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/visarcu/heatmap/pkg/heatmap"
	pkgio "github.com/visarcu/heatmap/pkg/io"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/pipeline"
)

// renderCommand creates the render command, the shortcut from stocks (or
// live quotes) straight to image files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  mapFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [stocks.json|layout.json]",
		Short: "Render a heatmap to SVG, PNG or JSON",
		Long: `Render a heatmap to SVG, PNG or JSON.

The input may be a stock list (from 'fetch') or a computed layout (from
'layout'). Without an input file, quotes for --universe or --symbols are
fetched first, so a single command goes from index name to image.

Results are cached for faster subsequent runs.`,
		Example: `  heatmap render --universe dax --legend -f svg,png
  heatmap render stocks.json --sector Technology --top 50 -o tech.svg
  heatmap render stocks.layout.json -f png --scale 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, opts, output)
		},
	}

	flags.registerFetch(cmd)
	flags.registerLayout(cmd)
	flags.registerRender(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (single format) or base path (multiple); "-" for stdout`)

	return cmd
}

// renderResult is what runRender reports after writing files.
type renderResult struct {
	artifacts map[string][]byte
	stocks    int
	tiles     int
	cached    bool
}

// runRender resolves the input, renders it and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering heatmap...")
	spinner.Start()

	res, err := renderInput(ctx, runner, input, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	name := input
	switch {
	case name == "" && len(opts.Symbols) > 0:
		name = appName
	case name == "":
		name = opts.Universe
	case strings.HasSuffix(name, ".layout.json"):
		name = strings.TrimSuffix(name, ".layout.json") + ".json"
	}

	paths, err := writeArtifacts(res.artifacts, opts.Formats, output, name)
	if err != nil {
		return err
	}
	if output == stdoutPath {
		return nil
	}

	printSuccess("Rendered %s", strings.Join(opts.Formats, ", "))
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.stocks, res.tiles, res.cached)
	return nil
}

// renderInput renders a stock list, a layout, or live quotes when input is empty.
func renderInput(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*renderResult, error) {
	if input == "" {
		return execute(ctx, runner, opts)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}

	if isLayout(data) {
		h, err := heatmap.Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("load layout %s: %w", input, err)
		}
		artifacts, cached, err := runner.RenderWithCacheInfo(ctx, h, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		return &renderResult{artifacts: artifacts, stocks: len(h.Tiles), tiles: len(h.Tiles), cached: cached}, nil
	}

	stocks, err := pkgio.ReadJSON(bytes.NewReader(data), market.DefaultSectors())
	if err != nil {
		return nil, fmt.Errorf("load stocks %s: %w", input, err)
	}
	opts.Stocks = stocks
	return execute(ctx, runner, opts)
}

func execute(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*renderResult, error) {
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &renderResult{
		artifacts: result.Artifacts,
		stocks:    result.Stats.StockCount,
		tiles:     result.Stats.TileCount,
		cached:    result.CacheInfo.RenderHit,
	}, nil
}

// isLayout reports whether data holds a layout object rather than a stock
// array.
func isLayout(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
