package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/questlog/pkg/commands/options"
	"tableflip.dev/questlog/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the quest tree with completion.",
		Example: `
questlog list
questlog list --all --show-id
questlog list --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, _, err := loadApp()
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				App:    a,
				ShowID: ido.ShowID,
				All:    lo.All,
				JSON:   oo.JSON,
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddListArgs(cmd, lo)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
