// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/research-agent/internal/httputil"
	"github.com/pdiddy/research-agent/pkg/types"
)

// jinaBaseURL is the content-extraction proxy prefix; the target URL is
// appended verbatim. Package-level var for test substitution.
var jinaBaseURL = "https://r.jina.ai/"

// DefaultTimeout bounds a single read.
const DefaultTimeout = 15 * time.Second

// Jina reads pages through the Jina reader proxy.
type Jina struct {
	APIKey   string
	MaxChars int
	Client   *http.Client
	// Log receives one line per read outcome. Nil discards.
	Log io.Writer
}

// NewJina returns a Jina reader with a client bounded by timeout
// (DefaultTimeout when zero).
func NewJina(apiKey string, timeout time.Duration, maxChars int, log io.Writer) *Jina {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Jina{
		APIKey:   apiKey,
		MaxChars: maxChars,
		Client:   &http.Client{Timeout: timeout},
		Log:      log,
	}
}

type jinaEnvelope struct {
	Data struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"data"`
}

// Read fetches url through the proxy. Any non-200 status, transport error,
// or malformed JSON produces a failed ReadResult.
func (j *Jina) Read(ctx context.Context, url string) types.ReadResult {
	log := j.Log
	if log == nil {
		log = io.Discard
	}

	req, err := httputil.NewJSONRequest(ctx, http.MethodGet, jinaBaseURL+url, nil)
	if err != nil {
		fmt.Fprintf(log, "read failed %s: %v\n", url, err)
		return failed(url)
	}
	req.Header.Set("Authorization", "Bearer "+j.APIKey)

	client := j.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(log, "read failed %s: %v\n", url, err)
		return failed(url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(log, "read failed %s: http %d\n", url, resp.StatusCode)
		return failed(url)
	}

	var env jinaEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		fmt.Fprintf(log, "read failed %s: decoding response: %v\n", url, err)
		return failed(url)
	}

	maxChars := j.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	fmt.Fprintf(log, "read %s\n", env.Data.Title)
	return types.ReadResult{
		URL:     url,
		Title:   env.Data.Title,
		Content: types.Clip(env.Data.Content, maxChars),
		Success: true,
	}
}
