// Package check marks quests completed or not completed.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/questlog/pkg/app"
	"tableflip.dev/questlog/pkg/quest"
)

type Check struct {
	App     *app.Service
	IDs     []string
	Checked bool
	Out     io.Writer
}

// Do applies the change to every id. Unknown ids are reported after the
// known ones have been applied.
func (n *Check) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not check, no app service")
	}
	if len(n.IDs) == 0 {
		return errors.New("at least one quest id is required")
	}
	c, _, err := n.App.OpenHeadless(ctx)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	var errs []error
	for _, id := range n.IDs {
		if err := c.SetChecked(quest.ItemID(id), n.Checked); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}
	_, _ = fmt.Fprintf(out, "Progress: %s\n", c.Progress())
	return errors.Join(errs...)
}
