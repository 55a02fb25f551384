package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, gains
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, losses
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleUp   = lipgloss.NewStyle().Foreground(colorGreen)
	styleDown = lipgloss.NewStyle().Foreground(colorRed)
	styleFlat = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Status Lines
// =============================================================================

// status is a one-line message prefixed by a coloured icon.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	statusError   = status{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	statusWarning = status{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	statusInfo    = status{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

// out is where status lines go; tests swap it.
var out io.Writer = os.Stdout

func (s status) print(msg string) {
	fmt.Fprintln(out, s.style.Render(s.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { statusSuccess.print(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { statusError.print(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { statusInfo.print(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	statusWarning.print(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints "  → path" for a written file.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(out, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints map statistics on a single line, e.g.
// "503 stocks · 498 tiles · cached".
func printStats(stockCount, tileCount int, cached bool) {
	fmt.Fprintln(out, "  "+statsLine(stockCount, tileCount, cached))
}

func statsLine(stockCount, tileCount int, cached bool) string {
	var parts []string
	if stockCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d stocks", stockCount)))
	}
	if tileCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d tiles", tileCount)))
	}
	if cached {
		parts = append(parts, styleUp.Render("cached"))
	} else {
		parts = append(parts, styleFlat.Render("fresh"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// changeStyle colours a percentage change green, red or grey.
func changeStyle(pct float64) lipgloss.Style {
	switch {
	case pct > 0:
		return styleUp
	case pct < 0:
		return styleDown
	default:
		return styleFlat
	}
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(out)
}
