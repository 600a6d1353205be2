// Package printers writes checklist reports for the command line.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/questlog/pkg/app"
)

type PrettyPrint struct {
	ShowID bool
	// All prints collapsed sections' quests too.
	All bool
	Out io.Writer
}

const descWidth = 72

var (
	spacing = strings.Repeat(" ", len("shivering-isles-12  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Title prints a section header, indented by level.
func (pp *PrettyPrint) Title(s app.ReportSection) {
	t := color.New(color.Bold)
	if s.Level == 1 {
		t.Add(color.Underline)
	}
	c := color.New(color.Faint)

	w := pp.out()
	if pp.ShowID {
		_, _ = fmt.Fprint(w, spacing)
	}
	_, _ = fmt.Fprint(w, pad(s.Level))
	_, _ = t.Fprint(w, s.Header)
	_, _ = c.Fprintf(w, " %s\n", s.Progress)
}

// Items prints the rows of one section.
func (pp *PrettyPrint) Items(level int, items ...app.ReportItem) {
	w := pp.out()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.FgGreen)
	f := color.New(color.Faint)

	for _, it := range items {
		if pp.ShowID {
			_, _ = y.Fprint(w, it.ID)
			_, _ = fmt.Fprint(w, strings.Repeat(" ", max(1, len(spacing)-len(it.ID))))
		}
		box := "[ ]"
		if it.Checked {
			box = done.Sprint("[x]")
		}
		_, _ = fmt.Fprintf(w, "%s%s %s\n", pad(level+1), box, it.Name)
		if it.Desc != "" {
			margin := len(pad(level+1)) + 4
			if pp.ShowID {
				margin += len(spacing)
			}
			_, _ = f.Fprintln(w, indent.String(wordwrap.String(it.Desc, descWidth), uint(margin)))
		}
	}
}

// Report prints every section in render order. Collapsed sections list
// their quests only when All is set.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	if len(r.Sections) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no quests\n\n")
		return
	}
	for _, s := range r.Sections {
		pp.Title(s)
		if pp.All || s.Expanded {
			pp.Items(s.Level, s.Items...)
		}
	}
	pp.NewLine()
	pp.Total(r)
}

// Total prints the aggregate progress line.
func (pp *PrettyPrint) Total(r app.ReportResult) {
	b := color.New(color.Bold)
	_, _ = b.Fprintf(pp.out(), "Progress: %s\n", r.Progress)
}

// Table prints per-section progress down to maxLevel as a table.
func (pp *PrettyPrint) Table(r app.ReportResult, maxLevel int) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Category"), bold.Sprint("Done"), bold.Sprint("Total"), bold.Sprint("%"))
	for _, s := range r.Sections {
		if maxLevel > 0 && s.Level > maxLevel {
			continue
		}
		tbl.AddRow(pad(s.Level)+s.Header, s.Progress.Checked, s.Progress.Total, s.Progress.Percent)
	}
	tbl.AddRow(bold.Sprint("Total"), r.Progress.Checked, r.Progress.Total, r.Progress.Percent)
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	tbl.RightAlign(3)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func pad(level int) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("  ", level-1)
}
