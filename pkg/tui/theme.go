package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/questlog/pkg/checklist"
)

// Theme centralizes Lip Gloss styles for the checklist view.
type Theme struct {
	Title    lipgloss.Style
	Levels   [checklist.MaxLevel]lipgloss.Style
	Row      lipgloss.Style
	Checked  lipgloss.Style
	Desc     lipgloss.Style
	Cursor   lipgloss.Style
	Help     lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	BarEmpty lipgloss.Style

	barFrom colorful.Color
	barTo   colorful.Color
}

// Palette endpoints. Section levels and the progress bar blend between them.
const (
	goldHex   = "#C9A227"
	bronzeHex = "#7A5C2E"
	redHex    = "#A8322D"
	greenHex  = "#4E9A52"
)

// Default returns the built-in theme.
func Default() Theme {
	gold := mustHex(goldHex)
	bronze := mustHex(bronzeHex)

	t := Theme{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color(goldHex)).Bold(true),
		Row:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Checked:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true),
		Desc:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(redHex)).Bold(true),
		BarEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barFrom:  mustHex(redHex),
		barTo:    mustHex(greenHex),
	}
	for i := range t.Levels {
		blend := float64(i) / float64(len(t.Levels)-1)
		c := gold.BlendLab(bronze, blend)
		t.Levels[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(i == 0)
	}
	return t
}

// Level returns the header style for a section level.
func (t Theme) Level(level int) lipgloss.Style {
	if level < 1 {
		level = 1
	}
	if level > len(t.Levels) {
		level = len(t.Levels)
	}
	return t.Levels[level-1]
}

// Bar draws a progress bar width cells wide. Filled cells shade from red to
// green as completion grows.
func (t Theme) Bar(p checklist.Progress, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if p.Total > 0 {
		filled = p.Checked * width / p.Total
	}
	var b strings.Builder
	for i := 0; i < filled; i++ {
		c := t.barFrom.BlendLab(t.barTo, float64(i)/float64(max(1, width-1)))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█"))
	}
	b.WriteString(t.BarEmpty.Render(strings.Repeat("░", width-filled)))
	return b.String()
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
