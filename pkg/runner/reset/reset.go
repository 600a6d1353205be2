// Package reset clears persisted checklist state.
package reset

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/questlog/pkg/app"
)

type Reset struct {
	App *app.Service
	// Yes skips the confirmation prompt.
	Yes bool
	// Confirm asks the user. Defaults to a promptui confirmation.
	Confirm func() (bool, error)
	Out     io.Writer
}

func (n *Reset) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not reset, no app service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if !n.Yes {
		confirm := n.Confirm
		if confirm == nil {
			confirm = promptConfirm
		}
		ok, err := confirm()
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Reset cancelled")
			return nil
		}
	}
	if err := n.App.Reset(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "Progress and expansion state cleared")
	return nil
}

func promptConfirm() (bool, error) {
	prompt := promptui.Prompt{
		Label:     "Erase all quest progress",
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
