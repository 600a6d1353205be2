// Package transfer moves progress in and out of export documents.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"

	"tableflip.dev/questlog/pkg/app"
)

// Export writes the export document to Output, or to Out when Output is "-".
type Export struct {
	App    *app.Service
	Output string
	Out    io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not export, no app service")
	}
	c, _, err := n.App.OpenHeadless(ctx)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	name := n.Output
	if name == "" {
		name = n.App.ExportName
	}
	if name == "-" {
		return c.Export(out)
	}
	path, err := homedir.Expand(name)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Export(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Exported %s to %s\n", c.Progress(), path)
	return nil
}

// Import applies the document at Path, or read from In when Path is "-".
type Import struct {
	App  *app.Service
	Path string
	In   io.Reader
	Out  io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not import, no app service")
	}
	if n.Path == "" {
		return errors.New("an import file is required")
	}
	c, _, err := n.App.OpenHeadless(ctx)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	var r io.Reader
	if n.Path == "-" {
		r = n.In
		if r == nil {
			r = os.Stdin
		}
	} else {
		path, err := homedir.Expand(n.Path)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := c.Import(r); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Imported %s\n", c.Progress())
	return nil
}
