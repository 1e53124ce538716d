package cli

import (
	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/contentbridge-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/contentbridge-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "contentbridge",
	Short: "Ingest content from remote APIs into markdown and local storage",
	Long: `contentbridge reads a source configuration, traverses paginated
content APIs, maps every record into front matter and a content body
using mapping expressions, and emits the results as markdown files
and into local storage.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose || storedSettings().Verbose)
	},
}

// storedSettings loads the persisted defaults. A broken or missing
// settings file falls back to zero settings.
func storedSettings() configfile.Settings {
	store, err := configfile.NewSettingsStore("")
	if err != nil {
		return configfile.Settings{}
	}
	return store.Settings()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
