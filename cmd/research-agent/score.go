package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/filter"
)

var scoreCmd = &cobra.Command{
	Use:   "score <topic> <text>",
	Short: "Score how relevant a text is to a topic",
	Long: `Score asks the language model to rate text against topic on a 0 to 10 scale
and prints the normalized score (0 to 1). Only the first 500 characters of
text are sent. A non-numeric reply scores 0.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		model, err := newModel(cfg)
		if err != nil {
			return err
		}
		ctx, stop := signalContext(cmd)
		defer stop()

		score, err := filter.Score(ctx, model, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%.2f\n", score)
		return nil
	},
}

func init() {
	addModelFlags(scoreCmd)

	rootCmd.AddCommand(scoreCmd)
}
