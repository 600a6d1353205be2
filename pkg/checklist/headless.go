package checklist

import (
	"tableflip.dev/questlog/pkg/quest"
)

// Element is the state a Headless surface keeps for one node.
type Element struct {
	Section  bool
	Parent   Node
	Category string
	Header   string
	Level    int

	ID   quest.ItemID
	Name string
	Desc string

	Expanded  bool
	Indicator bool
	Checked   bool
}

type element struct {
	Element
	children []Node
	activate []func()
	keys     []func(string)
	toggle   []func()
}

// Headless is an in-memory Surface. It backs the command line, the MCP
// server and the terminal UI's bookkeeping, and lets tests drive the
// checklist the way a user would.
type Headless struct {
	elems    []*element
	roots    []Node
	label    string
	progress Progress
}

// NewHeadless returns an empty surface.
func NewHeadless() *Headless {
	return &Headless{}
}

func (h *Headless) get(n Node) *element {
	i := int(n) - 1
	if i < 0 || i >= len(h.elems) {
		return nil
	}
	return h.elems[i]
}

func (h *Headless) add(parent Node, e *element) Node {
	h.elems = append(h.elems, e)
	n := Node(len(h.elems))
	if p := h.get(parent); p != nil {
		p.children = append(p.children, n)
	} else {
		h.roots = append(h.roots, n)
	}
	return n
}

// CreateSection implements Surface.
func (h *Headless) CreateSection(parent Node, category, header string, level int) Node {
	return h.add(parent, &element{Element: Element{
		Section:  true,
		Parent:   parent,
		Category: category,
		Header:   header,
		Level:    level,
	}})
}

// CreateRow implements Surface.
func (h *Headless) CreateRow(section Node, id quest.ItemID, name, desc string) Node {
	return h.add(section, &element{Element: Element{
		Parent: section,
		ID:     id,
		Name:   name,
		Desc:   desc,
	}})
}

func (h *Headless) SetExpanded(n Node, expanded bool) {
	if e := h.get(n); e != nil {
		e.Expanded = expanded
	}
}

func (h *Headless) Expanded(n Node) bool {
	if e := h.get(n); e != nil {
		return e.Expanded
	}
	return false
}

func (h *Headless) SetIndicators(n Node, expanded bool) {
	if e := h.get(n); e != nil {
		e.Indicator = expanded
	}
}

func (h *Headless) SetChecked(n Node, checked bool) {
	if e := h.get(n); e != nil {
		e.Checked = checked
	}
}

func (h *Headless) Checked(n Node) bool {
	if e := h.get(n); e != nil {
		return e.Checked
	}
	return false
}

func (h *Headless) OnActivate(n Node, fn func()) {
	if e := h.get(n); e != nil {
		e.activate = append(e.activate, fn)
	}
}

func (h *Headless) OnKey(n Node, fn func(string)) {
	if e := h.get(n); e != nil {
		e.keys = append(e.keys, fn)
	}
}

func (h *Headless) OnToggle(n Node, fn func()) {
	if e := h.get(n); e != nil {
		e.toggle = append(e.toggle, fn)
	}
}

func (h *Headless) Dispatch(n Node) {
	if e := h.get(n); e != nil {
		for _, fn := range e.toggle {
			fn()
		}
	}
}

func (h *Headless) SetToggleAllLabel(label string) { h.label = label }

func (h *Headless) SetProgress(p Progress) { h.progress = p }

// Activate simulates a pointer activation of a header or a row's body.
func (h *Headless) Activate(n Node) {
	if e := h.get(n); e != nil {
		for _, fn := range e.activate {
			fn()
		}
	}
}

// Press simulates a key press on a focused node.
func (h *Headless) Press(n Node, key string) {
	if e := h.get(n); e != nil {
		for _, fn := range e.keys {
			fn(key)
		}
	}
}

// Toggle simulates a click on a row's checkbox.
func (h *Headless) Toggle(n Node) {
	if e := h.get(n); e != nil && !e.Section {
		e.Checked = !e.Checked
		h.Dispatch(n)
	}
}

// Roots returns the top-level nodes.
func (h *Headless) Roots() []Node { return append([]Node(nil), h.roots...) }

// Children returns the nodes created under n.
func (h *Headless) Children(n Node) []Node {
	if n == Root {
		return h.Roots()
	}
	if e := h.get(n); e != nil {
		return append([]Node(nil), e.children...)
	}
	return nil
}

// Element returns a copy of n's state.
func (h *Headless) Element(n Node) (Element, bool) {
	if e := h.get(n); e != nil {
		return e.Element, true
	}
	return Element{}, false
}

// Label is the toggle-all control's label.
func (h *Headless) Label() string { return h.label }

// Shown is the last progress handed to the display.
func (h *Headless) Shown() Progress { return h.progress }
