package options

import (
	"github.com/spf13/cobra"
)

// ListOptions
type ListOptions struct {
	All   bool
	Depth int
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().BoolVarP(&o.All, "all", "a", false,
		"Include quests of collapsed sections.")
}

func AddDepthArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().IntVarP(&o.Depth, "depth", "d", 0,
		"Only show sections down to this level (1-3). 0 shows every level.")
}
