package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the web for one query",
	Long: `Search sends one query to the web search provider and prints the hits
with their snippets. No pages are read and nothing is scored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if creds.Tavily == "" {
			return fmt.Errorf("missing credentials: TAVILY_API_KEY")
		}
		ctx, stop := signalContext(cmd)
		defer stop()

		results, err := search.Search(ctx, newSearchProvider(cfg), strings.Join(args, " "), cfg.Search.MaxResults, progress(cmd))
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return search.FormatJSON(results, os.Stdout)
		}
		search.FormatTable(results, os.Stdout)
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("max-results", 3, "maximum number of results to return")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
