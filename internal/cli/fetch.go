package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/visarcu/heatmap/pkg/io"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/pipeline"
)

// fetchCommand creates the fetch command for downloading quotes.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		flags  mapFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch quotes for a universe or symbol list",
		Long: `Fetch real-time quotes and write them as a stock list.

Symbols are fetched in batches; quotes without a usable market cap are
dropped. The result (stocks.json) feeds 'layout', 'render', 'sectors' and
'view'. Quotes are cached for two minutes unless --refresh is given.`,
		Example: `  heatmap fetch --universe dax -o dax.json
  heatmap fetch --symbols AAPL,MSFT,NVDA -o - | jq .`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd.Context(), c.options(cmd, &flags), output)
		},
	}

	flags.registerFetch(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "stocks.json", `output file ("-" for stdout)`)

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, opts pipeline.Options, output string) error {
	stocks, cached, err := c.fetchStocks(ctx, opts)
	if err != nil {
		return err
	}

	if output == stdoutPath {
		return pkgio.WriteJSON(stocks, os.Stdout)
	}
	if err := pkgio.ExportJSON(stocks, output); err != nil {
		return err
	}

	printSuccess("Fetched %d stocks", len(stocks))
	printFile(output)
	printStats(len(stocks), 0, cached)
	printNewline()
	printNextStep("Render", "heatmap render "+output)
	return nil
}

// fetchStocks runs the fetch stage behind a spinner.
func (c *CLI) fetchStocks(ctx context.Context, opts pipeline.Options) ([]market.Stock, bool, error) {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	source := opts.Universe
	if len(opts.Symbols) > 0 {
		source = fmt.Sprintf("%d symbols", len(opts.Symbols))
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Fetching %s quotes...", source))
	spinner.Start()

	stocks, cached, err := runner.FetchStocksWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return nil, false, err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Fetched %d stocks from %s", len(stocks), source))

	return stocks, cached, nil
}
