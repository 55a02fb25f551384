package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/pipeline"
)

// sectorsCommand creates the sectors command, a sector performance table.
func (c *CLI) sectorsCommand() *cobra.Command {
	var (
		flags  mapFlags
		locale string
		byCap  bool
	)

	cmd := &cobra.Command{
		Use:   "sectors [stocks.json]",
		Short: "Show sector performance as a table",
		Long: `Show sector performance as a table.

Sectors are ranked by average daily change (or by market cap with --by-cap).
Without an input file, quotes for --universe or --symbols are fetched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			if cmd.Flags().Changed("locale") {
				opts.Locale = locale
			}
			f, err := market.ParseLocale(opts.Locale)
			if err != nil {
				return err
			}
			stocks, err := c.loadOrFetch(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			fmt.Println(sectorTable(stocks, f, byCap))
			fmt.Println(summaryLine(market.Summarize(stocks), f))
			return nil
		},
	}

	flags.registerFetch(cmd)
	cmd.Flags().StringVar(&locale, "locale", "", "number and sector language: de, en")
	cmd.Flags().BoolVar(&byCap, "by-cap", false, "rank sectors by market cap instead of change")

	return cmd
}

// loadOrFetch reads the stock list named in args, or fetches quotes when
// no file is given.
func (c *CLI) loadOrFetch(ctx context.Context, args []string, opts pipeline.Options) ([]market.Stock, error) {
	if len(args) == 1 {
		return loadStocks(args[0])
	}
	stocks, _, err := c.fetchStocks(ctx, opts)
	return stocks, err
}

// sectorTable renders one row per sector.
func sectorTable(stocks []market.Stock, f market.Formatter, byCap bool) string {
	sectors := market.AggregateSectors(stocks)
	if !byCap {
		market.SortByPerformance(sectors)
	}

	labels := f.Labels()
	rows := make([][]string, len(sectors))
	for i, s := range sectors {
		rows[i] = []string{
			f.Sector(s.Sector),
			strconv.Itoa(s.Count),
			f.Percent(s.AvgChange, 2),
			f.MarketCap(s.TotalMarketCap),
			leader(s.Stocks),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(labels.Sector, "#", "Ø", labels.MarketCap, "Top").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			switch col {
			case 1, 3:
				return cell.Align(lipgloss.Right).Foreground(colorGray)
			case 2:
				return changeStyle(sectors[row].AvgChange).Padding(0, 1).Align(lipgloss.Right)
			case 4:
				return cell.Foreground(colorCyan)
			}
			return cell
		})

	return t.Render()
}

// leader returns the largest stock's symbol; AggregateSectors keeps input
// order, so it is the first by market cap only for sorted input.
func leader(stocks []market.Stock) string {
	var best market.Stock
	for _, s := range stocks {
		if s.MarketCap > best.MarketCap {
			best = s
		}
	}
	return best.Symbol
}

// summaryLine reports market breadth, e.g. "▲ 312  ▼ 180  ● 11  Ø +0.42%".
func summaryLine(s market.Summary, f market.Formatter) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		styleUp.Render(fmt.Sprintf("▲ %d", s.Up)),
		styleDown.Render(fmt.Sprintf("▼ %d", s.Down)),
		styleFlat.Render(fmt.Sprintf("● %d", s.Unchanged)),
		changeStyle(s.AvgChange).Render("Ø "+f.Percent(s.AvgChange, 2)),
	)
}
