package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/questlog/pkg/runner/check"
)

func addCheck(topLevel *cobra.Command) {
	for _, spec := range []struct {
		use     string
		short   string
		checked bool
	}{
		{"check", "Mark quests as completed.", true},
		{"uncheck", "Mark quests as not completed.", false},
	} {
		checked := spec.checked
		cmd := &cobra.Command{
			Use:   spec.use + " <id>...",
			Short: spec.short,
			Example: `
questlog ` + spec.use + ` main-quest-0 shivering-isles-3
`,
			Args:              cobra.MinimumNArgs(1),
			ValidArgsFunction: completeQuestIDs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cmd.SilenceUsage = true
				a, _, err := loadApp()
				if err != nil {
					return err
				}
				c := check.Check{App: a, IDs: args, Checked: checked}
				return c.Do(cmd.Context())
			},
		}
		topLevel.AddCommand(cmd)
	}
}
