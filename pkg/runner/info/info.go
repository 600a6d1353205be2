// Package info prints configuration and storage diagnostics.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/questlog/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("QUESTLOG_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "QUESTLOG_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "QUESTLOG_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Setting"), bold.Sprint("Value"))
	tbl.AddRow("path", n.Config.BasePath())
	tbl.AddRow("source", n.Config.Source())
	tbl.AddRow("aria", n.Config.ARIA())
	tbl.AddRow("click_anywhere", n.Config.ClickAnywhere())
	tbl.AddRow("export_name", n.Config.ExportName())
	tbl.AddRow("log_level", n.Config.LogLevel())
	_, _ = fmt.Fprintln(out, tbl)

	if n.Persistence == nil {
		return fmt.Errorf("Failed to create persistence object.")
	}

	_, _ = fmt.Fprintf(out, "Stored keys:\n")
	found := 0
	for _, k := range n.Persistence.Keys(ctx) {
		size := 0
		if v, err := n.Persistence.Read(k); err == nil {
			size = len(v)
		}
		_, _ = fmt.Fprintf(out, "  %s (%d bytes)\n", k, size)
		found++
	}
	if found == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no saved state")
	}
	return nil
}
