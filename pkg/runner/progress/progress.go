// Package progress prints completion per category.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/questlog/pkg/app"
	"tableflip.dev/questlog/pkg/printers"
)

type Progress struct {
	App *app.Service
	// Depth limits the table to sections at or above this level. Zero
	// prints every level.
	Depth int
	JSON  bool
	Out   io.Writer
}

func (n *Progress) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not report progress, no app service")
	}
	c, h, err := n.App.OpenHeadless(ctx)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	r := app.Report(c, h)

	if n.JSON {
		type section struct {
			Category string `json:"category"`
			Level    int    `json:"level"`
			Checked  int    `json:"checked"`
			Total    int    `json:"total"`
			Percent  int    `json:"percent"`
		}
		payload := struct {
			Progress any       `json:"progress"`
			Sections []section `json:"sections"`
		}{Progress: r.Progress}
		for _, s := range r.Sections {
			if n.Depth > 0 && s.Level > n.Depth {
				continue
			}
			payload.Sections = append(payload.Sections, section{
				Category: s.Category,
				Level:    s.Level,
				Checked:  s.Progress.Checked,
				Total:    s.Progress.Total,
				Percent:  s.Progress.Percent,
			})
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.Table(r, n.Depth)
	return nil
}
