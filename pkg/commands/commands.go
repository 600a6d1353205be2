package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/questlog/pkg/app"
	"tableflip.dev/questlog/pkg/logging"
	"tableflip.dev/questlog/pkg/store"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "questlog",
		Short: base.Wrap80("Track Oblivion quest completion on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("source", "", "Quest document path or http(s) URL.")
	cmd.PersistentFlags().String("path", "", "Directory holding saved progress.")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error.")
	_ = viper.BindPFlag("source", cmd.PersistentFlags().Lookup("source"))
	_ = viper.BindPFlag("path", cmd.PersistentFlags().Lookup("path"))
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addCheck(topLevel)
	addProgress(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addExpand(topLevel)
	addReset(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadApp resolves configuration and opens storage.
func loadApp() (*app.Service, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel())
	return app.New(cfg, p, logger), cfg, nil
}
