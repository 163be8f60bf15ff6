// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-agent/internal/llm"
	"github.com/pdiddy/research-agent/pkg/types"
)

func TestBuildContext(t *testing.T) {
	got := BuildContext([]types.Result{
		{Title: "What Is Agentic AI?", URL: "https://blogs.nvidia.com/blog/what-is-agentic-ai/", Content: "Agentic AI plans."},
		{Title: "Agentic AI Explained", URL: "https://mitsloan.mit.edu/x", Content: "Agents act."},
	})

	want := "\nSource 1: What Is Agentic AI?\n" +
		"URL: https://blogs.nvidia.com/blog/what-is-agentic-ai/\n" +
		"Content: Agentic AI plans.\n" +
		strings.Repeat("-", 40) +
		"\nSource 2: Agentic AI Explained\n" +
		"URL: https://mitsloan.mit.edu/x\n" +
		"Content: Agents act.\n" +
		strings.Repeat("-", 40)
	assert.Equal(t, want, got)
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
}

func TestBuildContextBoundsContent(t *testing.T) {
	got := BuildContext([]types.Result{
		{Title: "long", URL: "u1", Content: strings.Repeat("x", 1500)},
		{Title: "wide", URL: "u2", Content: strings.Repeat("字", 1500)},
	})

	for _, line := range strings.Split(got, "\n") {
		if !strings.HasPrefix(line, "Content: ") {
			continue
		}
		body := strings.TrimPrefix(line, "Content: ")
		assert.Equal(t, sourceChars, utf8.RuneCountInString(body))
	}
}

func TestWrite(t *testing.T) {
	var prompt string
	m := llm.ModelFunc(func(_ context.Context, p string) (string, error) {
		prompt = p
		return "# Agentic AI\n\nVerbatim output.", nil
	})
	results := []types.Result{{Title: "T", URL: "https://a.example/x", Content: "c"}}

	got, err := Write(context.Background(), m, "What is Agentic AI?", results, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "# Agentic AI\n\nVerbatim output.", got)
	assert.Contains(t, prompt, "Topic: What is Agentic AI?")
	assert.Contains(t, prompt, "Source 1: T\nURL: https://a.example/x\nContent: c\n")
	assert.Contains(t, prompt, "[Source: website.com]")
	assert.Contains(t, prompt, `"Sources" section`)
	assert.Contains(t, prompt, "3-4 main sections")
}

func TestWriteModelError(t *testing.T) {
	boom := errors.New("rate limited")
	m := llm.ModelFunc(func(context.Context, string) (string, error) { return "", boom })

	_, err := Write(context.Background(), m, "t", nil, io.Discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
