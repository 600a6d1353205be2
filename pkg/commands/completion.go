package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/questlog/pkg/app"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(questlog completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(questlog completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func completeQuestIDs(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	r, ok := completionReport(cmd.Context())
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	for _, s := range r.Sections {
		for _, it := range s.Items {
			if strings.HasPrefix(string(it.ID), toComplete) {
				ids = append(ids, string(it.ID)+"\t"+it.Name)
			}
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	r, ok := completionReport(cmd.Context())
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	seen := make(map[string]bool)
	var cats []string
	for _, s := range r.Sections {
		if seen[s.Category] || !strings.HasPrefix(s.Category, toComplete) {
			continue
		}
		seen[s.Category] = true
		cats = append(cats, s.Category)
	}
	return cats, cobra.ShellCompDirectiveNoFileComp
}

func completionReport(ctx context.Context) (app.ReportResult, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	a, _, err := loadApp()
	if err != nil {
		return app.ReportResult{}, false
	}
	c, h, err := a.OpenHeadless(ctx)
	if err != nil {
		return app.ReportResult{}, false
	}
	return app.Report(c, h), true
}
