package options

import (
	"github.com/spf13/cobra"
)

// TransferOptions
type TransferOptions struct {
	Output string
}

func AddExportArgs(cmd *cobra.Command, o *TransferOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "",
		`Export file. Defaults to export_name from config; "-" writes to stdout.`)
}
