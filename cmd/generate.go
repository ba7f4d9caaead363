// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/profile-cards/internal/config"
	"github.com/naka-gawa/profile-cards/internal/gateway"
	"github.com/naka-gawa/profile-cards/internal/render"
	"github.com/naka-gawa/profile-cards/internal/usecase"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fetches profile data and writes the SVG stat cards",
	Long: `Fetches the configured user's repositories, language breakdown, and
31-day commit/PR/issue activity, then writes stats.svg, languages.svg and
activity.svg to the output directory.

Requires GITHUB_TOKEN and GITHUB_USER in the environment (a .env file is
loaded if present). Missing configuration exits with code 2.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		_ = godotenv.Load()
		cfg, err := config.Load(os.Getenv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		if outFlag, _ := cmd.Flags().GetString("out"); outFlag != "" {
			cfg.OutDir = outFlag
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		aggregator := usecase.NewAggregator(githubGateway, logger, cfg.LangLimit)

		now := time.Now().UTC()
		stats, activity, err := aggregator.Aggregate(ctx, cfg.User, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to aggregate stats: %v\n", err)
			os.Exit(1)
		}

		// With --json, dump the aggregated records instead of rendering cards.
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			jsonData, err := json.MarshalIndent(map[string]any{
				"stats":    stats,
				"activity": activity,
			}, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(jsonData))
			return
		}

		cards := []struct {
			name   string
			render func() ([]byte, error)
		}{
			{"stats.svg", func() ([]byte, error) { return render.StatsCard(*stats, now) }},
			{"languages.svg", func() ([]byte, error) { return render.LanguagesCard(*stats, now) }},
			{"activity.svg", func() ([]byte, error) { return render.ActivityCard(stats.Login, *activity, now) }},
		}

		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output directory %s: %v\n", cfg.OutDir, err)
			os.Exit(1)
		}
		written := make([]string, 0, len(cards))
		for _, card := range cards {
			svg, err := card.render()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to render %s: %v\n", card.name, err)
				os.Exit(1)
			}
			path := filepath.Join(cfg.OutDir, card.name)
			if err := os.WriteFile(path, svg, 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
				os.Exit(1)
			}
			written = append(written, path)
		}

		fmt.Printf("Wrote %s, %s, %s\n", written[0], written[1], written[2])
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String("out", "", "Output directory for the SVG cards (default \"assets\")")
	generateCmd.Flags().Bool("json", false, "Print the aggregated stats as JSON instead of writing SVG cards")
}
