package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/questlog/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive checklist",
		Example: `
questlog ui
questlog ui --source https://example.com/quests.json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := loadApp()
			if err != nil {
				return err
			}
			i := ui.UI{App: a, LogLevel: cfg.LogLevel()}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
