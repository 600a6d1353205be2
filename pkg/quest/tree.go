package quest

import (
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"
)

// Kind tags what a category node holds.
type Kind int

const (
	// Label is a category whose value was neither a list nor a mapping. It
	// renders as a header with no content.
	Label Kind = iota
	// Leaf holds quest items.
	Leaf
	// Branch holds subcategories.
	Branch
)

// Node is a built category.
type Node struct {
	Name        string
	DisplayName string
	// Count is the number of items transitively under the node.
	Count    int
	Kind     Kind
	Items    []Item
	Children []*Node
}

// Header is the text shown for the category.
func (n *Node) Header() string {
	if n.Kind == Label {
		return n.DisplayName
	}
	return fmt.Sprintf("%s (%d)", n.DisplayName, n.Count)
}

var countSuffix = regexp.MustCompile(` \(\d+\)$`)

// DisplayName strips a trailing " (N)" annotation from a category name.
func DisplayName(name string) string {
	return countSuffix.ReplaceAllString(name, "")
}

// Build converts a document into its top-level category nodes.
func Build(doc *Document) []*Node {
	if doc == nil {
		return nil
	}
	return buildChildren(doc.root)
}

func buildChildren(obj gjson.Result) []*Node {
	var nodes []*Node
	obj.ForEach(func(key, value gjson.Result) bool {
		nodes = append(nodes, buildNode(key.String(), value))
		return true
	})
	return nodes
}

func buildNode(name string, value gjson.Result) *Node {
	n := &Node{Name: name, DisplayName: DisplayName(name)}
	switch {
	case value.IsArray():
		n.Kind = Leaf
		for _, v := range value.Array() {
			n.Items = append(n.Items, Item{
				Name: v.Get("name").String(),
				Desc: v.Get("desc").String(),
			})
		}
		n.Count = len(n.Items)
	case value.IsObject():
		n.Kind = Branch
		n.Children = buildChildren(value)
		for _, c := range n.Children {
			n.Count += c.Count
		}
	default:
		n.Kind = Label
	}
	return n
}

// Walk visits n and its descendants depth first.
func Walk(nodes []*Node, fn func(n *Node, depth int)) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(n *Node, depth int)) {
	for _, n := range nodes {
		fn(n, depth)
		walk(n.Children, depth+1, fn)
	}
}
