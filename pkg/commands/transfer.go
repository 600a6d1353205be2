package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/questlog/pkg/commands/options"
	"tableflip.dev/questlog/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write progress to an export file.",
		Example: `
questlog export
questlog export -o - > backup.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, _, err := loadApp()
			if err != nil {
				return err
			}
			e := transfer.Export{App: a, Output: to.Output, Out: cmd.OutOrStdout()}
			return e.Do(cmd.Context())
		},
	}

	options.AddExportArgs(cmd, to)

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace progress with the contents of an export file.",
		Example: `
questlog import oblivion-progress.json
cat backup.json | questlog import -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, _, err := loadApp()
			if err != nil {
				return err
			}
			i := transfer.Import{App: a, Path: args[0], In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
