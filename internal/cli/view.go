package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/visarcu/heatmap/pkg/market"
)

// viewCommand creates the view command, an interactive terminal heatmap.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		flags  mapFlags
		locale string
	)

	cmd := &cobra.Command{
		Use:   "view [stocks.json]",
		Short: "Browse a heatmap in the terminal",
		Long: `Browse a heatmap in the terminal.

Tiles are coloured by daily change and sized by market cap. Use tab to step
through sectors and the arrow keys (or hjkl) to select a stock.`,
		Example: `  heatmap view --universe nasdaq100
  heatmap view stocks.json`,
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
			if len(stocks) == 0 {
				return errors.New("no stocks to show")
			}

			title := viewTitle(args, opts.Universe)
			p := tea.NewProgram(NewHeatmapModel(title, stocks, f), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("view: %w", err)
			}
			return nil
		},
	}

	flags.registerFetch(cmd)
	cmd.Flags().StringVar(&locale, "locale", "", "number and sector language: de, en")

	return cmd
}

func viewTitle(args []string, universe string) string {
	switch {
	case len(args) == 1:
		return args[0]
	case universe != "":
		return universe
	}
	return appName
}
