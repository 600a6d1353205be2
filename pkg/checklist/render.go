package checklist

import (
	"tableflip.dev/questlog/pkg/quest"
)

// MaxLevel is the deepest visual section level. Deeper categories render at
// this level.
const MaxLevel = 3

// Section is a rendered category.
type Section struct {
	Category string
	Node     Node
	Parent   Node
	Level    int
	Source   *quest.Node
}

// Row is a rendered quest.
type Row struct {
	ID      quest.ItemID
	Node    Node
	Section Node
	Item    quest.Item
}

// Tree is what a Renderer mounted, in creation order.
type Tree struct {
	Sections []Section
	Rows     []Row

	parents map[Node]Node
}

// Row returns the row for id.
func (t *Tree) Row(id quest.ItemID) (Row, bool) {
	for _, r := range t.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

// RowsUnder returns the rows transitively under section n.
func (t *Tree) RowsUnder(n Node) []Row {
	var rows []Row
	for _, r := range t.Rows {
		for p := r.Section; p != Root; p = t.parents[p] {
			if p == n {
				rows = append(rows, r)
				break
			}
		}
	}
	return rows
}

// Renderer mounts quest nodes onto a Surface and wires its listeners.
type Renderer struct {
	Surface Surface
	Options RenderOptions

	// SectionToggled runs after a header activation changed a section.
	SectionToggled func()
	// RowChanged runs after a row's checkbox changed.
	RowChanged func()
}

// Render mounts nodes under mount. Every section starts collapsed.
func (r *Renderer) Render(nodes []*quest.Node, mount Node) *Tree {
	t := &Tree{parents: make(map[Node]Node)}
	for _, n := range nodes {
		r.renderNode(t, mount, n, 1)
	}
	return t
}

func (r *Renderer) renderNode(t *Tree, parent Node, n *quest.Node, level int) {
	s := r.Surface
	sec := s.CreateSection(parent, n.Name, n.Header(), level)
	r.apply(sec, false)
	t.parents[sec] = parent
	t.Sections = append(t.Sections, Section{
		Category: n.Name,
		Node:     sec,
		Parent:   parent,
		Level:    level,
		Source:   n,
	})

	switch n.Kind {
	case quest.Leaf:
		for i, item := range n.Items {
			r.renderRow(t, sec, n.Name, i, item)
		}
	case quest.Branch:
		next := level + 1
		if next > MaxLevel {
			next = MaxLevel
		}
		for _, c := range n.Children {
			r.renderNode(t, sec, c, next)
		}
	}

	s.OnActivate(sec, func() { r.toggle(sec) })
	s.OnKey(sec, func(key string) {
		if key == KeyEnter || key == KeySpace {
			r.toggle(sec)
		}
	})
}

func (r *Renderer) renderRow(t *Tree, sec Node, category string, index int, item quest.Item) {
	s := r.Surface
	id := quest.Identify(category, index)
	row := s.CreateRow(sec, id, item.Name, item.Desc)
	t.Rows = append(t.Rows, Row{ID: id, Node: row, Section: sec, Item: item})

	s.OnToggle(row, func() {
		if r.RowChanged != nil {
			r.RowChanged()
		}
	})
	if r.Options.ClickAnywhere {
		s.OnActivate(row, func() {
			s.SetChecked(row, !s.Checked(row))
			s.Dispatch(row)
		})
	}
}

func (r *Renderer) toggle(sec Node) {
	r.apply(sec, !r.Surface.Expanded(sec))
	if r.SectionToggled != nil {
		r.SectionToggled()
	}
}

// apply sets a section's visibility and, with ARIA on, its indicators.
func (r *Renderer) apply(sec Node, expanded bool) {
	applyExpanded(r.Surface, r.Options, sec, expanded)
}

func applyExpanded(s Surface, opts RenderOptions, sec Node, expanded bool) {
	s.SetExpanded(sec, expanded)
	if opts.ARIA {
		s.SetIndicators(sec, expanded)
	}
}
