package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/questlog/pkg/runner/reset"
)

func addReset(topLevel *cobra.Command) {
	yes := false

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase saved progress and expansion state.",
		Example: `
questlog reset
questlog reset --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, _, err := loadApp()
			if err != nil {
				return err
			}
			r := reset.Reset{App: a, Yes: yes}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")

	topLevel.AddCommand(cmd)
}
