package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phrazzld/kanban-api/internal/board"
	"github.com/phrazzld/kanban-api/internal/prefs"
)

// laneWidth is the inner width of a rendered column.
const laneWidth = 28

// Theme is a set of styles for rendering the board.
type Theme struct {
	Name    string
	Lane    lipgloss.Style
	Header  lipgloss.Style
	Task    lipgloss.Style
	Pending lipgloss.Style
	Muted   lipgloss.Style
}

func newTheme(name string, fg, muted, accent, border, pending lipgloss.Color) Theme {
	return Theme{
		Name: name,
		Lane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(laneWidth),
		Header: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Task: lipgloss.NewStyle().
			Foreground(fg),
		Pending: lipgloss.NewStyle().
			Foreground(pending).
			Italic(true),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
	}
}

// DarkTheme uses the One Dark palette.
func DarkTheme() Theme {
	return newTheme("dark",
		lipgloss.Color("#ABB2BF"),
		lipgloss.Color("#5C6370"),
		lipgloss.Color("#C678DD"),
		lipgloss.Color("#3F4451"),
		lipgloss.Color("#E5C07B"))
}

// LightTheme uses the One Light palette.
func LightTheme() Theme {
	return newTheme("light",
		lipgloss.Color("#383A42"),
		lipgloss.Color("#A0A1A7"),
		lipgloss.Color("#A626A4"),
		lipgloss.Color("#D4D4D4"),
		lipgloss.Color("#C18401"))
}

// ThemeFor picks the theme matching the dark-mode preference.
func ThemeFor(p *prefs.Preferences) Theme {
	if p != nil && p.DarkMode {
		return DarkTheme()
	}
	return LightTheme()
}

// Render draws the board as columns side by side.
func Render(b board.Board, theme Theme) string {
	lanes := b.Lanes()
	if len(lanes) == 0 {
		return theme.Muted.Render("No columns yet. Add one with: boardctl column add <name>")
	}

	rendered := make([]string, 0, len(lanes))
	for _, lane := range lanes {
		rendered = append(rendered, renderLane(lane, theme))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderLane(lane board.Lane, theme Theme) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s %s", lane.Column.Name, theme.Muted.Render(idLabel(lane.Column.ID)))
	if lane.Column.Status() == board.StatusPending {
		header += " " + theme.Pending.Render("saving")
	}
	sb.WriteString(theme.Header.Render(header))

	if len(lane.Tasks) == 0 {
		sb.WriteString("\n" + theme.Muted.Render("(empty)"))
	}
	for _, t := range lane.Tasks {
		line := fmt.Sprintf("%s %s", theme.Muted.Render(idLabel(t.ID)), theme.Task.Render(t.Title))
		if t.Status() == board.StatusPending {
			line += " " + theme.Pending.Render("saving")
		}
		sb.WriteString("\n" + line)
	}

	return theme.Lane.Render(sb.String())
}

// idLabel shows server IDs as #N and placeholders as #new.
func idLabel(id int64) string {
	if id < 0 {
		return "#new"
	}
	return fmt.Sprintf("#%d", id)
}
