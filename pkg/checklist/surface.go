// Package checklist renders a quest tree onto a Surface and keeps the
// surface's checked and expanded state in sync with persisted records.
package checklist

import "tableflip.dev/questlog/pkg/quest"

// Node is an opaque handle to a section or row created on a Surface.
type Node int

// Root is the mount point. Surfaces must accept it as a parent and never
// return it from CreateSection or CreateRow.
const Root Node = 0

// Keys delivered to OnKey listeners.
const (
	KeyEnter = "enter"
	KeySpace = "space"
)

// Surface is the display the checklist is rendered onto. The core only holds
// Node handles; surfaces own the widgets.
type Surface interface {
	// CreateSection adds a collapsible section under parent. level is the
	// visual level, 1 through 3.
	CreateSection(parent Node, category, header string, level int) Node
	// CreateRow adds a checkable quest row to a section.
	CreateRow(section Node, id quest.ItemID, name, desc string) Node

	// SetExpanded shows or hides a section's content.
	SetExpanded(n Node, expanded bool)
	Expanded(n Node) bool
	// SetIndicators updates the expanded/hidden accessibility indicators of
	// a section's header and content.
	SetIndicators(n Node, expanded bool)

	// SetChecked changes a row's checkbox without notifying listeners.
	SetChecked(n Node, checked bool)
	Checked(n Node) bool

	// OnActivate registers a pointer activation listener for a section
	// header or the body of a row.
	OnActivate(n Node, fn func())
	// OnKey registers a key listener for a section header exposing a button
	// role.
	OnKey(n Node, fn func(key string))
	// OnToggle registers a change listener for a row's checkbox.
	OnToggle(n Node, fn func())
	// Dispatch fires the change listeners of a row.
	Dispatch(n Node)

	SetToggleAllLabel(label string)
	SetProgress(p Progress)
}

// RenderOptions selects between the presentation variants of the checklist.
type RenderOptions struct {
	// ARIA keeps accessibility indicators in step with section visibility.
	ARIA bool
	// ClickAnywhere lets activating a row's body toggle its checkbox.
	ClickAnywhere bool
}

// DefaultRenderOptions enables every affordance.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{ARIA: true, ClickAnywhere: true}
}

// Toggle-all labels.
const (
	LabelExpandAll   = "Expand All"
	LabelCollapseAll = "Collapse All"
)

func toggleAllLabel(allExpanded bool) string {
	if allExpanded {
		return LabelCollapseAll
	}
	return LabelExpandAll
}
