// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writer synthesizes the final cited report from the filtered
// results with one language-model call.
package writer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pdiddy/research-agent/internal/llm"
	"github.com/pdiddy/research-agent/pkg/types"
)

// sourceChars is how much of each result's content enters the context.
const sourceChars = 1000

var reportPromptTmpl = template.Must(template.New("report").Parse(`You are a research report writer. Using the sources provided, write a comprehensive and well-structured research report on the following topic.

Topic: {{.Topic}}

Sources:
{{.Context}}

Your report must:
1. Have a clear title
2. Have an introduction
3. Have 3-4 main sections with headings
4. Have a conclusion
5. After each key fact or claim, add the source in brackets like [Source: website.com]
6. End with a "Sources" section listing all URLs used

Write in a professional, clear, and informative tone.
`))

// BuildContext renders the per-source context block: title, URL, and the
// first 1000 characters of content for each result, in order.
func BuildContext(results []types.Result) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "\nSource %d: %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "URL: %s\n", r.URL)
		fmt.Fprintf(&b, "Content: %s\n", types.Clip(r.Content, sourceChars))
		b.WriteString(strings.Repeat("-", 40))
	}
	return b.String()
}

// Write asks the model for the report and returns its output verbatim.
// The required structure is requested but not validated.
func Write(ctx context.Context, model llm.Model, topic string, results []types.Result, w io.Writer) (string, error) {
	fmt.Fprintf(w, "writing report for %q from %d sources\n", topic, len(results))

	var buf bytes.Buffer
	err := reportPromptTmpl.Execute(&buf, struct {
		Topic   string
		Context string
	}{Topic: topic, Context: BuildContext(results)})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	report, err := model.Complete(ctx, buf.String())
	if err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintln(w, "report generated")
	return report, nil
}
