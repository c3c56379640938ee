package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/coverage"
)

// Palette. Signal, tower and blocked match the cell colors of the map renderers.
var (
	colorAccent  = lipgloss.Color("36")  // teal
	colorSignal  = lipgloss.Color("35")  // green
	colorTower   = lipgloss.Color("75")  // light blue
	colorBlocked = lipgloss.Color("167") // soft red
	colorWarn    = lipgloss.Color("220") // amber
	colorText    = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("245")
	colorFaint   = lipgloss.Color("240")
)

// Exported styles, shared with the picker.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorTower).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	StyleTower     = lipgloss.NewStyle().Foreground(colorTower)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleHeader      = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	styleKey         = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorTower)
)

const iconArrow = "→"

// status is a one-line message kind with its icon and styles.
type status struct {
	icon     string
	iconFg   lipgloss.Color
	styleMsg bool
}

var (
	statusSuccess = status{icon: "✓", iconFg: colorSignal}
	statusError   = status{icon: "✗", iconFg: colorBlocked}
	statusWarning = status{icon: "!", iconFg: colorWarn, styleMsg: true}
	statusInfo    = status{icon: "›", iconFg: colorMuted}
)

func (s status) print(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.styleMsg {
		msg = lipgloss.NewStyle().Foreground(s.iconFg).Render(msg)
	}
	fmt.Println(lipgloss.NewStyle().Foreground(s.iconFg).Render(s.icon) + " " + msg)
}

func printSuccess(format string, args ...any) { statusSuccess.print(format, args...) }
func printError(format string, args ...any)   { statusError.print(format, args...) }
func printWarning(format string, args ...any) { statusWarning.print(format, args...) }
func printInfo(format string, args ...any)    { statusInfo.print(format, args...) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints plan statistics on a single line. hops < 0 means no path.
func printStats(sum coverage.Summary, hops int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d towers", sum.Towers),
		fmt.Sprintf("%d signal", sum.Signal),
		fmt.Sprintf("%.0f%% covered", sum.Ratio*100),
	}
	if hops >= 0 {
		parts = append(parts, fmt.Sprintf("%d hops", hops))
	}
	sep := StyleDim.Render(" · ")

	origin := lipgloss.NewStyle().Foreground(colorMuted).Render("fresh")
	if cached {
		origin = lipgloss.NewStyle().Foreground(colorSignal).Render("cached")
	}
	fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")) + sep + origin)
}

// printPath prints a relay path as "(r,c) → (r,c) → ...".
func printPath(path []city.Coord) {
	if len(path) == 0 {
		printWarning("No relay path between the selected towers")
		return
	}
	hops := make([]string, len(path))
	for i, c := range path {
		hops[i] = StyleTower.Render(c.String())
	}
	fmt.Println("  " + strings.Join(hops, StyleDim.Render(" "+iconArrow+" ")))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}

// newTable builds a rounded table. cell styles body cells; header cells
// always use the header style.
func newTable(headers []string, rows [][]string, cell func(row, col int) lipgloss.Style) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return cell(row, col)
		})
}
