// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-agent/pkg/types"
)

// --- stub fetcher ---

type stubFetcher struct {
	pages map[string]types.ReadResult
	calls []string
}

func (s *stubFetcher) Read(_ context.Context, url string) types.ReadResult {
	s.calls = append(s.calls, url)
	if p, ok := s.pages[url]; ok {
		return p
	}
	return failed(url)
}

func withJinaBase(t *testing.T, base string) {
	t.Helper()
	old := jinaBaseURL
	jinaBaseURL = base
	t.Cleanup(func() { jinaBaseURL = old })
}

// --- Enrich ---

func TestEnrich(t *testing.T) {
	f := &stubFetcher{pages: map[string]types.ReadResult{
		"https://a": {URL: "https://a", Content: "full page A", Success: true},
	}}
	in := []types.Result{
		{URL: "https://a", Title: "A", Content: "snippet A"},
		{URL: "https://b", Title: "B", Content: "snippet B"},
	}

	got := Enrich(context.Background(), f, in, 6, io.Discard)

	require.Len(t, got, 2)
	assert.Equal(t, "full page A", got[0].Content)
	assert.True(t, got[0].Enriched)
	// Failed read keeps the original result.
	assert.Equal(t, types.Result{URL: "https://b", Title: "B", Content: "snippet B"}, got[1])
	assert.Equal(t, []string{"https://a", "https://b"}, f.calls)
}

func TestEnrichCapsReads(t *testing.T) {
	f := &stubFetcher{}
	var in []types.Result
	for i := 0; i < 9; i++ {
		in = append(in, types.Result{URL: fmt.Sprintf("https://site/%d", i)})
	}
	var out bytes.Buffer

	got := Enrich(context.Background(), f, in, 0, &out)

	assert.Len(t, f.calls, DefaultLimit)
	require.Len(t, got, DefaultLimit)
	assert.Equal(t, "https://site/5", got[5].URL)
	assert.Contains(t, out.String(), "reading first 6 of 9 results")
}

func TestEnrichEmpty(t *testing.T) {
	got := Enrich(context.Background(), &stubFetcher{}, nil, 6, io.Discard)
	assert.Empty(t, got)
}

// --- Jina ---

func TestJinaRead(t *testing.T) {
	var path, auth, accept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		accept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code":200,"data":{"title":"What Is Agentic AI?","content":"Agentic AI plans.","url":"x"}}`)
	}))
	defer ts.Close()
	withJinaBase(t, ts.URL+"/")

	j := &Jina{APIKey: "jina_test", Client: ts.Client()}
	got := j.Read(context.Background(), "https://blogs.nvidia.com/blog/what-is-agentic-ai/")

	assert.True(t, got.Success)
	assert.Equal(t, "What Is Agentic AI?", got.Title)
	assert.Equal(t, "Agentic AI plans.", got.Content)
	assert.Equal(t, "https://blogs.nvidia.com/blog/what-is-agentic-ai/", got.URL)
	assert.Equal(t, "/https://blogs.nvidia.com/blog/what-is-agentic-ai/", path)
	assert.Equal(t, "Bearer jina_test", auth)
	assert.Equal(t, "application/json", accept)
}

func TestJinaReadTruncates(t *testing.T) {
	long := strings.Repeat("é", 5000)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"data":{"title":"t","content":%q}}`, long)
	}))
	defer ts.Close()
	withJinaBase(t, ts.URL+"/")

	j := &Jina{Client: ts.Client()}
	got := j.Read(context.Background(), "https://x")

	require.True(t, got.Success)
	assert.Equal(t, DefaultMaxChars, utf8.RuneCountInString(got.Content))
	assert.True(t, utf8.ValidString(got.Content))
}

func TestJinaReadFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) }},
		{"201 is not 200", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"data":{"content":"x"}}`)
		}},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, `<html>`) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()
			withJinaBase(t, ts.URL+"/")

			var log bytes.Buffer
			j := &Jina{Client: ts.Client(), Log: &log}
			got := j.Read(context.Background(), "https://x")

			assert.Equal(t, types.ReadResult{URL: "https://x", Content: "", Success: false}, got)
			assert.Contains(t, log.String(), "read failed https://x")
		})
	}
}

func TestJinaReadUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := ts.URL + "/"
	ts.Close()
	withJinaBase(t, base)

	j := NewJina("k", 0, 0, nil)
	got := j.Read(context.Background(), "https://unreachable.invalid/")

	assert.False(t, got.Success)
	assert.Empty(t, got.Content)
}

func TestUnreachableReadKeepsResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := ts.URL + "/"
	ts.Close()
	withJinaBase(t, base)

	in := []types.Result{{URL: "https://unreachable.invalid/", Title: "gone", Content: "snippet"}}
	got := Enrich(context.Background(), NewJina("k", 0, 0, nil), in, 6, io.Discard)

	require.Len(t, got, 1)
	assert.Equal(t, in[0], got[0])
}

// --- Local ---

const articleHTML = `<!DOCTYPE html>
<html><head><title>Agentic AI Explained</title></head>
<body>
<nav>Home | About</nav>
<article>
<h1>Agentic AI Explained</h1>
<p>Agentic AI systems can perceive their environment, make decisions, and take actions to achieve specific goals.
They represent a significant leap beyond generative AI by adding autonomy and goal-directed behavior.</p>
<p>Unlike traditional assistants that respond to single prompts, agents plan multi-step work, call tools,
inspect the results, and revise their plan until the task is complete. This loop of planning and acting is
what distinguishes them from chat interfaces.</p>
<p>Enterprises are adopting agents for customer support, software engineering, and research workflows where
long-horizon reasoning pays off.</p>
</article>
<script>var tracking = true;</script>
</body></html>`

func TestLocalRead(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "research-agent/test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, articleHTML)
	}))
	defer ts.Close()

	l := &Local{UserAgent: "research-agent/test", Client: ts.Client()}
	got := l.Read(context.Background(), ts.URL+"/article")

	require.True(t, got.Success)
	assert.Contains(t, got.Content, "perceive their environment")
	assert.NotContains(t, got.Content, "tracking")
	assert.NotEmpty(t, got.Title)
}

func TestLocalReadTruncates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "<html><body><p>%s</p></body></html>", strings.Repeat("word ", 2000))
	}))
	defer ts.Close()

	l := &Local{MaxChars: 100, Client: ts.Client()}
	got := l.Read(context.Background(), ts.URL)

	require.True(t, got.Success)
	assert.LessOrEqual(t, utf8.RuneCountInString(got.Content), 100)
}

func TestLocalReadFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	l := NewLocal("", 0, 0, nil)
	l.Client = ts.Client()

	for _, url := range []string{ts.URL, "not a url", ""} {
		got := l.Read(context.Background(), url)
		assert.False(t, got.Success, url)
		assert.Empty(t, got.Content, url)
	}
}

func TestExtractBody(t *testing.T) {
	title, text, err := extractBody([]byte(`<html><head><title> T </title><style>p{}</style></head><body><p>one</p>  <p>two</p><script>x()</script></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "T", title)
	assert.Equal(t, "one two", text)

	_, _, err = extractBody([]byte(`<html><body><script>x()</script></body></html>`))
	assert.Error(t, err)
}
