// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/pdiddy/research-agent/pkg/types"
)

// maxPageBytes bounds how much HTML is read from a page.
const maxPageBytes = 5 << 20

// Local fetches pages directly and extracts the article text itself, for
// runs without a content-extraction proxy key.
type Local struct {
	UserAgent string
	MaxChars  int
	Client    *http.Client
	Log       io.Writer
}

// NewLocal returns a Local reader bounded by timeout (DefaultTimeout when zero).
func NewLocal(userAgent string, timeout time.Duration, maxChars int, log io.Writer) *Local {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Local{
		UserAgent: userAgent,
		MaxChars:  maxChars,
		Client:    &http.Client{Timeout: timeout},
		Log:       log,
	}
}

// Read downloads url and extracts the main article with readability,
// falling back to the visible <body> text.
func (l *Local) Read(ctx context.Context, url string) types.ReadResult {
	log := l.Log
	if log == nil {
		log = io.Discard
	}

	pageURL, err := nurl.Parse(url)
	if err != nil || pageURL.Scheme == "" || pageURL.Host == "" {
		fmt.Fprintf(log, "read failed %s: invalid url\n", url)
		return failed(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintf(log, "read failed %s: %v\n", url, err)
		return failed(url)
	}
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}

	client := l.Client
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

	html, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		fmt.Fprintf(log, "read failed %s: %v\n", url, err)
		return failed(url)
	}

	title, text, err := extractArticle(html, pageURL)
	if err != nil {
		fmt.Fprintf(log, "read failed %s: %v\n", url, err)
		return failed(url)
	}

	maxChars := l.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	fmt.Fprintf(log, "read %s\n", title)
	return types.ReadResult{
		URL:     url,
		Title:   title,
		Content: types.Clip(text, maxChars),
		Success: true,
	}
}

// extractArticle returns the page title and main text.
func extractArticle(html []byte, pageURL *nurl.URL) (string, string, error) {
	article, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err == nil {
		text := strings.TrimSpace(article.TextContent)
		if text != "" {
			return strings.TrimSpace(article.Title), text, nil
		}
	}
	return extractBody(html)
}

// extractBody is the fallback when readability finds no article: the
// <title> and the whitespace-collapsed <body> text without scripts or styles.
func extractBody(html []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("parsing html: %w", err)
	}
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if text == "" {
		return "", "", fmt.Errorf("no text content")
	}
	return title, text, nil
}
