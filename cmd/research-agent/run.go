package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/pipeline"
	"github.com/pdiddy/research-agent/internal/report"
	"github.com/pdiddy/research-agent/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run <topic>",
	Short: "Research a topic and print a cited report",
	Long: `Run executes the full pipeline: plan sub-questions, search each one, read
the top pages, score them for relevance, and write a report from the pages
that pass the threshold. The report goes to stdout (or --output); progress
goes to stderr.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func init() {
	runCmd.Flags().Int("questions", 3, "number of sub-questions to plan")
	runCmd.Flags().Int("max-results", 3, "search results per sub-question")
	runCmd.Flags().Int("read-limit", 6, "maximum results read; the rest are dropped")
	runCmd.Flags().Float64("threshold", 0.6, "minimum relevance score kept (0 to 1)")
	runCmd.Flags().Int("concurrency", 1, "relevance scoring calls in flight")
	runCmd.Flags().StringP("output", "o", "", "write the report to this file instead of stdout")
	runCmd.Flags().String("state", "", "also dump the full run state: yaml or json")
	runCmd.Flags().String("state-file", "", "write the state dump here instead of stderr")
	addModelFlags(runCmd)
	addReaderFlags(runCmd)

	rootCmd.AddCommand(runCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("provide a research topic")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := creds.Require(cfg.LLM.Provider, cfg.Reader.Backend); err != nil {
		return err
	}
	stateFormat, _ := cmd.Flags().GetString("state")
	if stateFormat != "" && stateFormat != string(report.StateYAML) && stateFormat != string(report.StateJSON) {
		return fmt.Errorf("unknown state format %q: use yaml or json", stateFormat)
	}

	log := progress(cmd)
	model, err := newModel(cfg)
	if err != nil {
		return err
	}
	p, err := pipeline.New(pipeline.Deps{
		Model:  model,
		Search: newSearchProvider(cfg),
		Reader: newReader(cfg, log),
		Log:    log,
	}, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	state, runErr := p.Run(ctx, topic)
	if stateFormat != "" && state != nil {
		if err := dumpState(cmd, state, report.StateFormat(stateFormat)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if err := writeReport(cmd, state.Report); err != nil {
		return err
	}
	report.FormatCheck(report.CheckCitations(state.Report, state.FilteredResults), os.Stderr)
	report.Summary(state, log)
	return nil
}

func writeReport(cmd *cobra.Command, text string) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		_, err := fmt.Fprintln(os.Stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(progress(cmd), "report written to %s\n", path)
	return nil
}

func dumpState(cmd *cobra.Command, state *types.ResearchState, format report.StateFormat) error {
	path, _ := cmd.Flags().GetString("state-file")
	var w io.Writer = os.Stderr
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating state file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return report.WriteState(state, format, w)
}
