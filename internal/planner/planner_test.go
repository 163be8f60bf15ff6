// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package planner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-agent/internal/llm"
)

// --- stub model ---

type stubModel struct {
	response string
	err      error
	prompts  []string
}

func (s *stubModel) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want []string
	}{
		{
			name: "dot numbering",
			resp: "1. What is agentic AI?\n2. How does it plan?\n3. Where is it used?",
			want: []string{"What is agentic AI?", "How does it plan?", "Where is it used?"},
		},
		{
			name: "paren numbering and bullets",
			resp: "1) First?\n- Second?\n10. Tenth?",
			want: []string{"First?", "Second?", "Tenth?"},
		},
		{
			name: "blank lines and indentation",
			resp: "\n\n   1. Alpha?\n\n\t2. Beta?   \n\n",
			want: []string{"Alpha?", "Beta?"},
		},
		{
			name: "line of only numbering is dropped",
			resp: "1.\n2. Real question?",
			want: []string{"Real question?"},
		},
		{
			name: "unnumbered lines kept",
			resp: "Why does it matter?",
			want: []string{"Why does it matter?"},
		},
		{
			name: "windows line endings",
			resp: "1. One?\r\n2. Two?\r\n",
			want: []string{"One?", "Two?"},
		},
		{
			name: "empty",
			resp: "",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuestions(tt.resp))
		})
	}
}

func TestPlan(t *testing.T) {
	m := &stubModel{response: "1. What is agentic AI?\n2. How do agents use tools?\n3. What are the risks?"}
	var out bytes.Buffer

	got, err := Plan(context.Background(), m, "What is Agentic AI?", 3, &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"What is agentic AI?", "How do agents use tools?", "What are the risks?"}, got)
	require.Len(t, m.prompts, 1)
	assert.Contains(t, m.prompts[0], "Topic: What is Agentic AI?")
	assert.Contains(t, m.prompts[0], "generate 3 focused sub-questions")
	assert.Contains(t, out.String(), "generated 3 sub-questions")
}

func TestPlan_DefaultCount(t *testing.T) {
	m := &stubModel{response: "1. Q?"}
	_, err := Plan(context.Background(), m, "topic", 0, io.Discard)
	require.NoError(t, err)
	assert.Contains(t, m.prompts[0], "generate 3 focused")
}

func TestPlan_CountNotValidated(t *testing.T) {
	m := &stubModel{response: "1. Only one?"}
	got, err := Plan(context.Background(), m, "topic", 5, io.Discard)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPlan_Deterministic(t *testing.T) {
	m := llm.ModelFunc(func(context.Context, string) (string, error) {
		return "1. A?\n2) B?\n- C?", nil
	})
	first, err := Plan(context.Background(), m, "topic", 3, io.Discard)
	require.NoError(t, err)
	second, err := Plan(context.Background(), m, "topic", 3, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlan_ModelErrorPropagates(t *testing.T) {
	m := &stubModel{err: errors.New("connection refused")}
	_, err := Plan(context.Background(), m, "topic", 3, io.Discard)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "planning sub-questions"))
	assert.ErrorIs(t, err, m.err)
}
