package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/questlog/pkg/runner/expand"
)

func addExpand(topLevel *cobra.Command) {
	all := false

	cmd := &cobra.Command{
		Use:   "expand [category]",
		Short: "Toggle a category open or closed, or every category with --all.",
		Example: `
questlog expand "Main Quest"
questlog expand --all
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeCategories,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if all == (len(args) == 1) {
				return errors.New("pass either a category or --all")
			}
			a, _, err := loadApp()
			if err != nil {
				return err
			}
			e := expand.Expand{App: a, All: all}
			if len(args) == 1 {
				e.Category = args[0]
			}
			return e.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Toggle every category.")

	topLevel.AddCommand(cmd)
}
