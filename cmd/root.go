// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "profile-cards",
	Short: "A CLI tool to generate GitHub profile stat cards as SVG.",
	Long: `profile-cards fetches a GitHub user's public profile data (repositories,
languages, stars, followers, recent commit/PR/issue activity) via the
GitHub REST API and renders static SVG stat cards for embedding in a
profile page.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
