// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planner breaks a research topic into focused sub-questions with
// one language-model call.
package planner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pdiddy/research-agent/internal/llm"
)

// DefaultQuestions is the number of sub-questions requested when n <= 0.
const DefaultQuestions = 3

// enumerationChars are stripped from the start of each response line
// ("1.", "2)", "- ").
const enumerationChars = "0123456789.)- "

var planPromptTmpl = template.Must(template.New("plan").Parse(`You are a research planner. Given a research topic, generate {{.N}} focused sub-questions that together would give a comprehensive understanding of the topic.

Topic: {{.Topic}}

Reply with ONLY the questions, one per line, numbered.
No extra text, no explanations.
`))

// Plan asks the model for n sub-questions about topic and returns the
// cleaned list. The count is not validated against n. Model errors are
// returned wrapped and end the run.
func Plan(ctx context.Context, model llm.Model, topic string, n int, w io.Writer) ([]string, error) {
	if n <= 0 {
		n = DefaultQuestions
	}
	fmt.Fprintf(w, "planning research for %q\n", topic)

	prompt, err := renderPrompt(topic, n)
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	resp, err := model.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("planning sub-questions: %w", err)
	}

	questions := ParseQuestions(resp)
	fmt.Fprintf(w, "generated %d sub-questions\n", len(questions))
	for _, q := range questions {
		fmt.Fprintf(w, "  -> %s\n", q)
	}
	return questions, nil
}

// ParseQuestions splits a model response into questions: one per non-blank
// line with leading numbering removed.
func ParseQuestions(resp string) []string {
	questions := []string{}
	for _, line := range strings.Split(strings.TrimSpace(resp), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		clean := strings.TrimSpace(strings.TrimLeft(line, enumerationChars))
		if clean != "" {
			questions = append(questions, clean)
		}
	}
	return questions
}

func renderPrompt(topic string, n int) (string, error) {
	var buf bytes.Buffer
	err := planPromptTmpl.Execute(&buf, struct {
		Topic string
		N     int
	}{Topic: topic, N: n})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
