// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-agent/pkg/types"
)

// StateFormat selects how a ResearchState is dumped.
type StateFormat string

const (
	StateYAML StateFormat = "yaml"
	StateJSON StateFormat = "json"
)

// WriteState dumps the full run state to w.
func WriteState(state *types.ResearchState, format StateFormat, w io.Writer) error {
	switch format {
	case StateYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("encoding state as yaml: %w", err)
		}
		return enc.Close()
	case StateJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("encoding state as json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown state format %q: use yaml or json", format)
	}
}

// FormatCheck writes citation diagnostics for a report, one warning per line.
// It writes nothing when every source is cited and listed.
func FormatCheck(c CitationCheck, w io.Writer) {
	if c.OK() {
		return
	}
	if !c.HasSourcesSection {
		fmt.Fprintln(w, "warning: report has no Sources section")
	}
	if len(c.Uncited) > 0 {
		fmt.Fprintf(w, "warning: sources never cited inline: %s\n", strings.Join(c.Uncited, ", "))
	}
	if c.HasSourcesSection && len(c.Unlisted) > 0 {
		fmt.Fprintf(w, "warning: sources missing from Sources section: %s\n", strings.Join(c.Unlisted, ", "))
	}
	if len(c.Unknown) > 0 {
		fmt.Fprintf(w, "warning: Sources section lists unknown URLs: %s\n", strings.Join(c.Unknown, ", "))
	}
}

// Summary writes a one-paragraph run summary.
func Summary(state *types.ResearchState, w io.Writer) {
	fmt.Fprintf(w, "run %s: %d sub-questions, %d results read, %d kept",
		state.RunID, len(state.Subquestions), len(state.RawResults), len(state.FilteredResults))
	if !state.StartedAt.IsZero() && !state.FinishedAt.IsZero() {
		fmt.Fprintf(w, " in %s", state.FinishedAt.Sub(state.StartedAt).Round(time.Millisecond))
	}
	fmt.Fprintln(w)
}
