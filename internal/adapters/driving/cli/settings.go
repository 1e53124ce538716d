package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/contentbridge-cli/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure tool-level defaults stored in
~/.contentbridge/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsOutputDirCmd = &cobra.Command{
	Use:   "output-dir <path>",
	Short: "Set the default markdown output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsOutputDir,
}

var settingsVerboseCmd = &cobra.Command{
	Use:   "verbose <true|false>",
	Short: "Enable or disable verbose logging by default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsVerbose,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsOutputDirCmd)
	settingsCmd.AddCommand(settingsVerboseCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	store, err := configfile.NewSettingsStore("")
	if err != nil {
		return err
	}

	settings := store.Settings()
	cmd.Printf("Settings (%s):\n", store.Path())
	cmd.Printf("  output-dir: %s\n", orUnset(settings.OutputDir))
	cmd.Printf("  verbose:    %t\n", settings.Verbose)
	return nil
}

func runSettingsOutputDir(cmd *cobra.Command, args []string) error {
	store, err := configfile.NewSettingsStore("")
	if err != nil {
		return err
	}

	settings := store.Settings()
	settings.OutputDir = args[0]
	if err := store.Update(settings); err != nil {
		return err
	}

	cmd.Printf("Default output directory set to %s.\n", args[0])
	return nil
}

func runSettingsVerbose(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseBool(args[0])
	if err != nil {
		return err
	}

	store, err := configfile.NewSettingsStore("")
	if err != nil {
		return err
	}

	settings := store.Settings()
	settings.Verbose = value
	if err := store.Update(settings); err != nil {
		return err
	}

	cmd.Printf("Verbose logging default set to %t.\n", value)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
