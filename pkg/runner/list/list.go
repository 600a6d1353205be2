// Package list prints the checklist tree.
package list

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

type List struct {
	App    *app.Service
	ShowID bool
	All    bool
	JSON   bool
	Out    io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not list, no app service")
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
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, All: n.All, Out: out}
	pp.NewLine()
	pp.Report(r)
	return nil
}
