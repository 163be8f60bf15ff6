// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/research-agent/internal/httputil"
)

// DefaultGroqModel is the model used when none is configured.
const DefaultGroqModel = "llama-3.3-70b-versatile"

// groqAPIURL is the OpenAI-compatible chat completions endpoint. Package-level
// var for test substitution.
var groqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// Groq calls an OpenAI-compatible chat completions API.
type Groq struct {
	APIKey    string
	Model     string
	MaxTokens int
	Client    *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends prompt as a single user message.
func (g *Groq) Complete(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model:     g.Model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: g.MaxTokens,
	}

	req, err := httputil.NewJSONRequest(ctx, http.MethodPost, groqAPIURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	var resp chatResponse
	if err := httputil.DoJSON(g.Client, req, &resp); err != nil {
		return "", fmt.Errorf("calling chat completions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completions returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
