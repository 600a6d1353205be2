package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/questlog/pkg/commands/options"
	"tableflip.dev/questlog/pkg/runner/progress"
)

func addProgress(topLevel *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show completion per category.",
		Example: `
questlog progress
questlog progress --depth 1 --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, _, err := loadApp()
			if err != nil {
				return oo.HandleError(err)
			}
			p := progress.Progress{App: a, Depth: lo.Depth, JSON: oo.JSON}
			return oo.HandleError(p.Do(cmd.Context()))
		},
	}

	options.AddDepthArgs(cmd, lo)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
