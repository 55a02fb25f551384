package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/visarcu/heatmap/pkg/heatmap"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/treemap"
)

// Terminal cells are roughly twice as tall as wide, so the treemap is laid
// out on a canvas of cols x 2*rows and halved vertically when drawn.
const (
	cellAspect  = 2
	chromeLines = 4 // header, blank, detail, help
)

var (
	tileLabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	tileSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("16")).Bold(true)
)

// heatmapKeys are the bindings of the terminal heatmap.
type heatmapKeys struct {
	Next, Prev            key.Binding
	Left, Right, Up, Down key.Binding
	Quit                  key.Binding
}

var keys = heatmapKeys{
	Next:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next sector")),
	Prev:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev sector")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k heatmapKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Right, k.Up, k.Down, k.Quit}
}

func (k heatmapKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Left, k.Right, k.Up, k.Down}, {k.Quit}}
}

// =============================================================================
// HeatmapModel - Interactive terminal heatmap
// =============================================================================

// HeatmapModel is the bubbletea model behind `heatmap view`.
type HeatmapModel struct {
	Title   string
	Stocks  []market.Stock
	Sectors []string // "" selects every sector
	Sector  int
	Cursor  int

	Width  int
	Height int

	formatter market.Formatter
	help      help.Model
	layout    *heatmap.Heatmap
	err       error
}

// NewHeatmapModel creates a model over stocks. Sectors are offered largest
// first.
func NewHeatmapModel(title string, stocks []market.Stock, f market.Formatter) HeatmapModel {
	sorted := append([]market.Stock(nil), stocks...)
	market.SortByMarketCap(sorted)

	sectors := []string{""}
	for _, s := range market.AggregateSectors(sorted) {
		sectors = append(sectors, s.Sector)
	}
	return HeatmapModel{
		Title:     title,
		Stocks:    sorted,
		Sectors:   sectors,
		Width:     80,
		Height:    24,
		formatter: f,
		help:      help.New(),
	}.relayout()
}

func (m HeatmapModel) Init() tea.Cmd {
	return nil
}

func (m HeatmapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.Sector = (m.Sector + 1) % len(m.Sectors)
			m.Cursor = 0
			return m.relayout(), nil
		case key.Matches(msg, keys.Prev):
			m.Sector = (m.Sector + len(m.Sectors) - 1) % len(m.Sectors)
			m.Cursor = 0
			return m.relayout(), nil
		case key.Matches(msg, keys.Left):
			m.Cursor = m.neighbor(-1, 0)
		case key.Matches(msg, keys.Right):
			m.Cursor = m.neighbor(1, 0)
		case key.Matches(msg, keys.Up):
			m.Cursor = m.neighbor(0, -1)
		case key.Matches(msg, keys.Down):
			m.Cursor = m.neighbor(0, 1)
		}
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m.relayout(), nil
	}
	return m, nil
}

// relayout recomputes the tiles for the current sector and terminal size.
func (m HeatmapModel) relayout() HeatmapModel {
	stocks := m.Stocks
	if sector := m.Sectors[m.Sector]; sector != "" {
		stocks = market.FilterSector(stocks, sector)
	}
	rows := max(1, m.Height-chromeLines)
	box := treemap.Box{Width: float64(max(1, m.Width)), Height: float64(rows * cellAspect)}

	m.layout, m.err = heatmap.Build(stocks, box, heatmap.Options{Padding: 0, MinSize: 1})
	if m.err == nil && m.Cursor >= len(m.layout.Tiles) {
		m.Cursor = 0
	}
	return m
}

// neighbor returns the tile nearest the selected one in direction (dx, dy),
// or the current selection when there is none.
func (m HeatmapModel) neighbor(dx, dy float64) int {
	if m.layout == nil || len(m.layout.Tiles) == 0 {
		return m.Cursor
	}
	cx, cy := m.layout.Tiles[m.Cursor].Box().Center()

	best, bestDist := m.Cursor, math.Inf(1)
	for i, t := range m.layout.Tiles {
		if i == m.Cursor {
			continue
		}
		x, y := t.Box().Center()
		ox, oy := x-cx, y-cy
		along := ox*dx + oy*dy
		if along <= 0 {
			continue
		}
		across := math.Abs(ox*dy) + math.Abs(oy*dx)
		if d := along + 2*across; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (m HeatmapModel) View() string {
	var b strings.Builder

	title := m.Title
	if sector := m.Sectors[m.Sector]; sector != "" {
		title += " - " + m.formatter.Sector(sector)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	if len(m.layout.Tiles) > 0 {
		b.WriteString(m.detail(m.layout.Tiles[m.Cursor]))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

// renderGrid paints every tile with its colour and puts the symbol on the
// tile's middle row when it fits.
func (m HeatmapModel) renderGrid() string {
	rows := max(1, m.Height-chromeLines)
	cols := max(1, m.Width)

	owner := make([][]int, rows)
	for r := range owner {
		owner[r] = make([]int, cols)
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}
	for i, t := range m.layout.Tiles {
		r0, r1 := cellSpan(t.Y/cellAspect, t.Height/cellAspect, rows)
		c0, c1 := cellSpan(t.X, t.Width, cols)
		for r := r0; r < r1; r++ {
			for c := c0; c < c1; c++ {
				owner[r][c] = i
			}
		}
	}

	var b strings.Builder
	for r := range rows {
		for c := 0; c < cols; {
			i := owner[r][c]
			end := c
			for end < cols && owner[r][end] == i {
				end++
			}
			b.WriteString(m.segment(i, r, end-c))
			c = end
		}
		if r < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// segment renders width cells of tile i on grid row r.
func (m HeatmapModel) segment(i, r, width int) string {
	if i < 0 {
		return strings.Repeat(" ", width)
	}
	t := m.layout.Tiles[i]
	text := strings.Repeat(" ", width)
	r0, r1 := cellSpan(t.Y/cellAspect, t.Height/cellAspect, max(1, m.Height-chromeLines))
	if r == (r0+r1-1)/2 && len(t.Symbol) <= width {
		pad := (width - len(t.Symbol)) / 2
		text = strings.Repeat(" ", pad) + t.Symbol + strings.Repeat(" ", width-pad-len(t.Symbol))
	}
	if i == m.Cursor {
		return tileSelectedStyle.Render(text)
	}
	return tileLabelStyle.Background(lipgloss.Color(t.Color)).Render(text)
}

// cellSpan converts a span in canvas units to whole cells within [0, limit).
func cellSpan(start, size float64, limit int) (int, int) {
	lo := int(math.Round(start))
	hi := int(math.Round(start + size))
	lo = min(max(lo, 0), limit)
	hi = min(max(hi, lo), limit)
	return lo, hi
}

func (m HeatmapModel) detail(t heatmap.Tile) string {
	f := m.formatter
	labels := f.Labels()
	return fmt.Sprintf("%s %s  %s  %s %s  %s %s  %s",
		StyleHighlight.Render(t.Symbol),
		StyleValue.Render(t.Name),
		StyleDim.Render(f.Sector(t.Sector)),
		StyleDim.Render(labels.Price), f.Price(t.Price),
		StyleDim.Render(labels.MarketCap), f.MarketCap(t.MarketCap),
		changeStyle(t.ChangePct).Render(f.Percent(t.ChangePct, 2)),
	)
}
