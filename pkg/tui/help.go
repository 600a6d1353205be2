package tui

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

//go:embed help.md
var helpMarkdown string

// helpView renders the key reference inside a bordered, scrollable viewport.
type helpView struct {
	viewport viewport.Model
	width    int
	height   int

	frame lipgloss.Style
	err   error
}

func newHelpView(width, height int) *helpView {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	h := &helpView{
		viewport: vp,
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(bronzeHex)),
	}
	h.SetSize(width, height)
	return h
}

// Update forwards scrolling to the viewport.
func (h *helpView) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := h.viewport.Update(msg)
	h.viewport = vp
	return cmd
}

func (h *helpView) View() string {
	body := h.viewport.View()
	if body == "" && h.err != nil {
		body = "help unavailable: " + h.err.Error()
	}
	return h.frame.Width(h.width).Height(h.height).Render(body)
}

// SetSize resizes the overlay and re-renders the markdown to fit.
func (h *helpView) SetSize(width, height int) {
	width = max(width, 32)
	height = max(height, 8)
	if h.width == width && h.height == height {
		return
	}
	h.width = width
	h.height = height

	innerWidth := max(width-h.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-h.frame.GetVerticalFrameSize(), 1)
	h.viewport.SetWidth(innerWidth)
	h.viewport.SetHeight(innerHeight)
	h.render(innerWidth)
}

func (h *helpView) render(wrap int) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err != nil {
		h.fail(err)
		return
	}
	content, err := renderer.Render(strings.TrimSpace(helpMarkdown))
	if err != nil {
		h.fail(err)
		return
	}
	h.err = nil
	h.viewport.SetContent(stripANSI(content))
	h.viewport.SetYOffset(0)
}

func (h *helpView) fail(err error) {
	h.err = err
	h.viewport.SetContent("help unavailable: " + err.Error())
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

// Glamour styles clash with the checklist palette; the frame carries color.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
