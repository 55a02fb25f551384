package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/visarcu/heatmap/pkg/heatmap"
	pkgio "github.com/visarcu/heatmap/pkg/io"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing heatmap layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  mapFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [stocks.json]",
		Short: "Compute a heatmap layout from a stock list",
		Long: `Compute a heatmap layout from a stock list.

The layout command takes a stocks.json file (produced by 'fetch', or any
JSON array of quotes) and places every stock as a tile sized by market cap.
The output is a layout.json file (same format as 'render -f json') that can
be rendered with 'render'.

Without --width and --height the canvas is sized from the number of tiles,
capped by --viewport when given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], c.options(cmd, &flags), output)
		},
	}

	flags.registerLayout(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")

	return cmd
}

// runLayout loads the stocks, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	stocks, err := loadStocks(input)
	if err != nil {
		return err
	}
	opts.Stocks = stocks

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Laying out %d stocks...", len(stocks)))
	spinner.Start()

	h, cached, err := runner.ComputeLayoutWithCacheInfo(ctx, stocks, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := heatmap.Marshal(h)
	if err != nil {
		return err
	}
	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := writeOutput(outputPath, data); err != nil {
		return err
	}
	if outputPath == stdoutPath {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(stocks), len(h.Tiles), cached)
	printNewline()
	printNextStep("Render", "heatmap render "+outputPath)

	return nil
}

// loadStocks reads a stock list, filling missing sectors from the built-in
// universes.
func loadStocks(path string) ([]market.Stock, error) {
	stocks, err := pkgio.ImportJSON(path, market.DefaultSectors())
	if err != nil {
		return nil, fmt.Errorf("load stocks %s: %w", path, err)
	}
	return stocks, nil
}
