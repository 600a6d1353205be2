package app

import (
	"tableflip.dev/questlog/pkg/checklist"
	"tableflip.dev/questlog/pkg/quest"
)

// ReportItem is one checklist row.
type ReportItem struct {
	ID      quest.ItemID `json:"id"`
	Name    string       `json:"name"`
	Desc    string       `json:"desc,omitempty"`
	Checked bool         `json:"checked"`
}

// ReportSection is one rendered section with the completion of the rows
// beneath it, nested sections included.
type ReportSection struct {
	Category string             `json:"category"`
	Header   string             `json:"header"`
	Level    int                `json:"level"`
	Expanded bool               `json:"expanded"`
	Progress checklist.Progress `json:"progress"`
	Items    []ReportItem       `json:"items,omitempty"`
}

// ReportResult is a flattened view of a mounted checklist in render order.
type ReportResult struct {
	Sections    []ReportSection    `json:"sections"`
	Progress    checklist.Progress `json:"progress"`
	AllExpanded bool               `json:"allExpanded"`
}

// Report summarises c as drawn on surface.
func Report(c *checklist.Checklist, surface checklist.Surface) ReportResult {
	t := c.Tree()
	items := make(map[checklist.Node][]ReportItem)
	for _, r := range t.Rows {
		items[r.Section] = append(items[r.Section], ReportItem{
			ID:      r.ID,
			Name:    r.Item.Name,
			Desc:    r.Item.Desc,
			Checked: surface.Checked(r.Node),
		})
	}
	out := ReportResult{
		Progress:    c.Progress(),
		AllExpanded: c.AllExpanded(),
		Sections:    make([]ReportSection, 0, len(t.Sections)),
	}
	for _, s := range t.Sections {
		out.Sections = append(out.Sections, ReportSection{
			Category: s.Category,
			Header:   s.Source.Header(),
			Level:    s.Level,
			Expanded: surface.Expanded(s.Node),
			Progress: c.SectionProgress(s.Node),
			Items:    items[s.Node],
		})
	}
	return out
}
