package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/planner"
)

var planCmd = &cobra.Command{
	Use:   "plan <topic>",
	Short: "Break a topic into sub-questions",
	Args:  cobra.MinimumNArgs(1),
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
		questions, err := planner.Plan(ctx, model, strings.Join(args, " "), cfg.Planner.Questions, progress(cmd))
		if err != nil {
			return err
		}
		for i, q := range questions {
			fmt.Fprintf(os.Stdout, "%d. %s\n", i+1, q)
		}
		return nil
	},
}

func init() {
	planCmd.Flags().Int("questions", 3, "number of sub-questions to plan")
	addModelFlags(planCmd)

	rootCmd.AddCommand(planCmd)
}
