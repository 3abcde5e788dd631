package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the skilld application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "skilld",
	Short: "Serve capability definitions to an AI orchestrator",
	Long: `skilld loads capability ("skill") definitions from markdown files with
YAML front matter, serves fast concurrent lookups, hot-reloads definitions
when files change, and dispatches handler executions under strict time and
fault isolation.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "skilld version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
