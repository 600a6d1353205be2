package store

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config describes where progress lives and how the checklist is built.
type Config interface {
	BasePath() string
	Source() string
	ARIA() bool
	ClickAnywhere() bool
	ExportName() string
	LogLevel() string
}

// LoadConfig reads `.questlog` (yaml) from $QUESTLOG_CONFIG_PATH or the
// working directory, with QUESTLOG_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.questlog.db")
	viper.SetDefault("source", "quests.json")
	viper.SetDefault("aria", true)
	viper.SetDefault("click_anywhere", true)
	viper.SetDefault("export_name", "oblivion-progress.json")
	viper.SetDefault("log_level", "warn")
	viper.SetConfigName(".questlog") // .yaml is implicit
	viper.SetEnvPrefix("QUESTLOG")
	viper.AutomaticEnv()

	if override := os.Getenv("QUESTLOG_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &FileConfig{
		Path:          path,
		QuestSource:   viper.GetString("source"),
		AriaEnabled:   viper.GetBool("aria"),
		ClickToCheck:  viper.GetBool("click_anywhere"),
		ExportFile:    viper.GetString("export_name"),
		LogLevelValue: viper.GetString("log_level"),
	}, nil
}

// FileConfig is the resolved configuration.
type FileConfig struct {
	Path          string `json:"path"`
	QuestSource   string `json:"source"`
	AriaEnabled   bool   `json:"aria"`
	ClickToCheck  bool   `json:"click_anywhere"`
	ExportFile    string `json:"export_name"`
	LogLevelValue string `json:"log_level"`
}

func (f *FileConfig) BasePath() string    { return f.Path }
func (f *FileConfig) Source() string      { return f.QuestSource }
func (f *FileConfig) ARIA() bool          { return f.AriaEnabled }
func (f *FileConfig) ClickAnywhere() bool { return f.ClickToCheck }
func (f *FileConfig) LogLevel() string    { return f.LogLevelValue }

func (f *FileConfig) ExportName() string {
	if f.ExportFile == "" {
		return "oblivion-progress.json"
	}
	return f.ExportFile
}
