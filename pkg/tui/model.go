// Package tui is the full-screen terminal checklist.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/questlog/pkg/app"
	"tableflip.dev/questlog/pkg/checklist"
	"tableflip.dev/questlog/pkg/quest"
	"tableflip.dev/questlog/pkg/store"
)

type mode int

const (
	modeLoading mode = iota
	modeNormal
	modeImport
	modeHelp
	modeFailed
)

// line is one visible entry of the checklist.
type line struct {
	node  checklist.Node
	depth int
}

// Model is the Bubble Tea model for the checklist. It owns a Headless
// surface; every checklist mutation happens inside Update.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	cancel context.CancelFunc
	theme  Theme

	mode    mode
	loadErr error

	list    *checklist.Checklist
	surface *checklist.Headless
	lines   []line
	cursor  int
	offset  int

	input  textinput.Model
	help   *helpView
	status string

	width  int
	height int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds the model. Data loads in Init.
func New(svc *app.Service) *Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/progress.json"
	ti.CharLimit = 512
	ti.Prompt = "Import from: "

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		svc:    svc,
		ctx:    ctx,
		cancel: cancel,
		theme:  Default(),
		mode:   modeLoading,
		input:  ti,
	}
}

type loadedMsg struct {
	nodes []*quest.Node
}

type loadFailedMsg struct {
	err error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Init loads quest data and starts watching persistence.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), startWatchCmd(m.ctx, m.svc))
}

func (m *Model) loadCmd() tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		if svc == nil {
			return loadFailedMsg{err: errors.New("no app service")}
		}
		nodes, err := svc.Load(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{nodes: nodes}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil || svc.Persistence == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.help != nil {
			m.help.SetSize(m.width, m.height)
		}
		m.scrollToCursor()
	case loadedMsg:
		m.surface = checklist.NewHeadless()
		m.list = m.svc.Mount(msg.nodes, m.surface)
		m.mode = modeNormal
		m.refreshLines()
	case loadFailedMsg:
		m.loadErr = msg.err
		m.mode = modeFailed
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "watch: " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyPressMsg:
		if cmd := m.handleKeyPress(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleWatchEvent(ev store.Event) {
	if m.list == nil || ev.Key != store.ProgressKey {
		return
	}
	m.list.ReloadProgress()
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	switch m.mode {
	case modeImport:
		return m.handleImportKey(msg)
	case modeHelp:
		return m.handleHelpKey(msg)
	case modeNormal:
		return m.handleNormalKey(msg)
	default:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m.quit()
		}
		return nil
	}
}

func (m *Model) quit() tea.Cmd {
	m.stopWatch()
	m.cancel()
	return tea.Quit
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m.quit()
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "home", "g":
		m.move(-len(m.lines))
	case "end", "G":
		m.move(len(m.lines))
	case "pgup":
		m.move(-m.pageSize())
	case "pgdown":
		m.move(m.pageSize())
	case "a":
		if err := m.list.ToggleAll(); err != nil {
			m.status = "save: " + err.Error()
		}
		m.refreshLines()
	case "e":
		m.export()
	case "i":
		m.mode = modeImport
		m.input.SetValue("")
		m.status = ""
		return tea.Batch(m.input.Focus(), textinput.Blink)
	case "r":
		m.list.ReloadProgress()
		m.status = "Progress reloaded"
	case "?":
		if m.help == nil {
			m.help = newHelpView(m.width, m.height)
		}
		m.mode = modeHelp
	default:
		m.activate(key)
	}
	return nil
}

// activate routes a key to the focused node the way a pointer or keyboard
// would reach it.
func (m *Model) activate(key string) {
	n, ok := m.current()
	if !ok {
		return
	}
	e, _ := m.surface.Element(n)
	if e.Section {
		switch key {
		case "left", "h":
			if e.Expanded {
				m.surface.Press(n, checklist.KeyEnter)
			} else if e.Parent != checklist.Root {
				m.focus(e.Parent)
			}
		case "right", "l":
			if !e.Expanded {
				m.surface.Press(n, checklist.KeyEnter)
			}
		default:
			m.surface.Press(n, key)
		}
		m.refreshLines()
		return
	}
	switch key {
	case checklist.KeySpace, "x":
		m.surface.Toggle(n)
	case checklist.KeyEnter:
		m.surface.Activate(n)
	case "left", "h":
		m.focus(e.Parent)
	}
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "?", "esc", "q":
		m.mode = modeNormal
		return nil
	case "ctrl+c":
		return m.quit()
	}
	return m.help.Update(msg)
}

func (m *Model) handleImportKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		m.status = "Import cancelled"
		return nil
	case "enter":
		path := strings.TrimSpace(m.input.Value())
		m.mode = modeNormal
		m.input.Blur()
		m.importFrom(path)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) export() {
	name := m.svc.ExportName
	if name == "" {
		name = "oblivion-progress.json"
	}
	f, err := os.Create(name)
	if err != nil {
		m.status = "export: " + err.Error()
		return
	}
	err = m.list.Export(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		m.status = "export: " + err.Error()
		return
	}
	m.status = "Exported to " + name
}

func (m *Model) importFrom(path string) {
	if path == "" {
		m.status = "Import cancelled"
		return
	}
	f, err := os.Open(path)
	if err != nil {
		m.status = "import: " + err.Error()
		return
	}
	defer f.Close()
	if err := m.list.Import(f); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "Imported " + path
}

func (m *Model) current() (checklist.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return 0, false
	}
	return m.lines[m.cursor].node, true
}

func (m *Model) focus(n checklist.Node) {
	for i, l := range m.lines {
		if l.node == n {
			m.cursor = i
			m.scrollToCursor()
			return
		}
	}
}

func (m *Model) move(delta int) {
	if len(m.lines) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	m.scrollToCursor()
}

// refreshLines recomputes the visible nodes, keeping focus on the same node
// when it is still shown.
func (m *Model) refreshLines() {
	prev, hadPrev := m.current()
	m.lines = m.lines[:0]
	var walk func(parent checklist.Node, depth int)
	walk = func(parent checklist.Node, depth int) {
		for _, n := range m.surface.Children(parent) {
			m.lines = append(m.lines, line{node: n, depth: depth})
			if e, _ := m.surface.Element(n); e.Section && e.Expanded {
				walk(n, depth+1)
			}
		}
	}
	walk(checklist.Root, 0)
	if hadPrev {
		for i, l := range m.lines {
			if l.node == prev {
				m.cursor = i
				m.scrollToCursor()
				return
			}
		}
	}
	m.move(0)
}

// Reserved rows: title, bar, blank, footer, status.
const chromeHeight = 5

func (m *Model) pageSize() int {
	if m.height <= chromeHeight {
		return 10
	}
	return m.height - chromeHeight
}

func (m *Model) scrollToCursor() {
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the checklist.
func (m *Model) View() string {
	th := m.theme
	switch m.mode {
	case modeLoading:
		return th.Status.Render("Loading quest data...")
	case modeFailed:
		msg := "Failed to load quest data"
		if m.loadErr != nil {
			msg = m.loadErr.Error()
		}
		return th.Error.Render(msg) + "\n\n" + th.Help.Render("q quit")
	case modeHelp:
		return m.help.View()
	}

	var b strings.Builder
	p := m.surface.Shown()
	b.WriteString(th.Title.Render("Oblivion Quest Checklist"))
	b.WriteString("  ")
	b.WriteString(th.Help.Render("[a] " + m.surface.Label()))
	b.WriteString("\n")
	b.WriteString(th.Bar(p, m.barWidth()))
	b.WriteString(" ")
	b.WriteString(p.String())
	b.WriteString("\n\n")

	end := m.offset + m.pageSize()
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderLine(m.lines[i], i == m.cursor))
		b.WriteString("\n")
	}

	if m.mode == modeImport {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(th.Help.Render("↑/↓ move  enter/space toggle  a all  e export  i import  ? help  q quit"))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(th.Status.Render(m.status))
	}
	return b.String()
}

func (m *Model) renderLine(l line, selected bool) string {
	th := m.theme
	e, _ := m.surface.Element(l.node)
	indent := strings.Repeat("  ", l.depth)
	cursor := "  "
	if selected {
		cursor = th.Cursor.Render("> ")
	}

	if e.Section {
		marker := "▸"
		if e.Expanded {
			marker = "▾"
		}
		style := th.Level(e.Level)
		return cursor + indent + style.Render(marker+" "+e.Header) + "  " +
			th.Status.Render(m.list.SectionProgress(l.node).String())
	}

	box, name := "[ ]", th.Row.Render(e.Name)
	if e.Checked {
		box, name = "[x]", th.Checked.Render(e.Name)
	}
	out := cursor + indent + box + " " + name
	if selected && e.Desc != "" {
		width := m.width - len(indent) - 6
		if width < 20 {
			width = 60
		}
		for _, dl := range strings.Split(wordwrap.String(e.Desc, width), "\n") {
			out += "\n" + "  " + indent + "    " + th.Desc.Render(dl)
		}
	}
	return out
}

func (m *Model) barWidth() int {
	if m.width <= 0 {
		return 30
	}
	w := m.width - 20
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	return w
}

// Run launches the interactive program.
func Run(svc *app.Service) error {
	m := New(svc)
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*Model); ok {
		return fm.Err()
	}
	return nil
}

// Err reports why loading failed, if it did.
func (m *Model) Err() error {
	if m.mode != modeFailed {
		return nil
	}
	if m.loadErr == nil {
		return fmt.Errorf("quest data unavailable")
	}
	return m.loadErr
}
