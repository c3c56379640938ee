package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/relay"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

// =============================================================================
// TowerPickerModel - Interactive endpoint selection
// =============================================================================

// TowerPickerModel is the bubbletea model for choosing a path start and end
// among the selected towers.
type TowerPickerModel struct {
	Towers []city.Coord
	Reach  []int // towers within relay range of each tower
	Cursor int
	Height int
	Offset int

	// Picks holds the chosen tower indices: start first, then end.
	Picks []int
}

// NewTowerPickerModel creates a picker over towers. g supplies the number of
// in-range neighbors shown next to each tower.
func NewTowerPickerModel(g *relay.RangeGraph) TowerPickerModel {
	towers := g.Nodes()
	reach := make([]int, len(towers))
	for i, t := range towers {
		nbrs, _ := g.Neighbors(t)
		reach[i] = len(nbrs)
	}
	return TowerPickerModel{
		Towers: towers,
		Reach:  reach,
		Height: 15,
	}
}

// Done reports whether both endpoints were picked.
func (m TowerPickerModel) Done() bool {
	return len(m.Picks) == 2
}

func (m TowerPickerModel) Init() tea.Cmd {
	return nil
}

func (m TowerPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Towers)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "backspace":
			if len(m.Picks) > 0 {
				m.Picks = m.Picks[:len(m.Picks)-1]
			}
		case "enter", " ":
			if len(m.Towers) == 0 {
				return m, tea.Quit
			}
			m.Picks = append(m.Picks, m.Cursor)
			if m.Done() {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m TowerPickerModel) View() string {
	var b strings.Builder

	title := "Select start tower"
	if len(m.Picks) == 1 {
		title = "Select end tower"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  ⌫ undo  q quit"))
	b.WriteString("\n\n")

	if len(m.Towers) == 0 {
		b.WriteString(listDimStyle.Render("  no towers in this plan"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Towers))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := ""
		if len(m.Picks) > 0 && m.Picks[0] == i {
			mark = "start"
		}
		rows = append(rows, []string{cursor, fmt.Sprint(i), m.Towers[i].String(), fmt.Sprint(m.Reach[i]), mark})
	}

	t := newTable([]string{"", "#", "Tower", "In range", ""}, rows, func(row, _ int) lipgloss.Style {
		idx := m.Offset + row
		switch {
		case idx == m.Cursor:
			return listSelectedStyle
		case idx < len(m.Reach) && m.Reach[idx] == 0:
			return listDimStyle
		}
		return StyleValue
	})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Towers))))

	return b.String()
}
