// Package ui starts the interactive checklist.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/questlog/pkg/app"
	"tableflip.dev/questlog/pkg/logging"
	"tableflip.dev/questlog/pkg/tui"
)

// ErrNoTerminal is returned when stdin or stdout is not a terminal.
var ErrNoTerminal = errors.New("ui requires an interactive terminal; try `questlog list`")

type UI struct {
	App      *app.Service
	LogLevel string
}

func (d *UI) Do(ctx context.Context) error {
	if d.App == nil {
		return errors.New("can not start ui, no app service")
	}
	if !isTerminal(os.Stdout.Fd()) || !isTerminal(os.Stdin.Fd()) {
		return ErrNoTerminal
	}

	// Alt-screen output would be corrupted by log lines on stderr.
	if d.App.Persistence != nil {
		logger, closeLog, err := logging.NewFile(d.App.Persistence.BasePath(), d.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()
		d.App.Logger = logger
	}
	return tui.Run(d.App)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
