// Package expand toggles section expansion from the command line.
package expand

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/questlog/pkg/app"
)

type Expand struct {
	App      *app.Service
	Category string
	All      bool
	Out      io.Writer
}

func (n *Expand) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not expand, no app service")
	}
	if !n.All && n.Category == "" {
		return errors.New("a category or --all is required")
	}
	c, h, err := n.App.OpenHeadless(ctx)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.All {
		if err := c.ToggleAll(); err != nil {
			return err
		}
		state := "collapsed"
		if c.AllExpanded() {
			state = "expanded"
		}
		_, _ = fmt.Fprintf(out, "All sections %s\n", state)
		return nil
	}

	if err := c.ToggleSection(n.Category); err != nil {
		return fmt.Errorf("%w: %s", err, n.Category)
	}
	for _, s := range c.Tree().Sections {
		if s.Category == n.Category {
			state := "collapsed"
			if h.Expanded(s.Node) {
				state = "expanded"
			}
			_, _ = fmt.Fprintf(out, "%s %s\n", s.Source.Header(), state)
		}
	}
	return nil
}
