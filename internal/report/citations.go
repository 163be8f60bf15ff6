// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a finished research run and inspects the
// citations in a generated report. Inspection only produces diagnostics;
// the report text is never modified.
package report

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/research-agent/pkg/types"
)

// inlineCitationPattern matches [Source: site] and [Source: a; b].
var inlineCitationPattern = regexp.MustCompile(`(?i)\[\s*source:\s*([^\[\]]+)\]`)

// urlPattern matches bare URLs; trailing punctuation is trimmed afterwards.
var urlPattern = regexp.MustCompile(`https?://[^\s<>()\[\]"']+`)

// sourcesHeadingPattern matches a line introducing the trailing sources list:
// "## Sources", "Sources:", "**Sources**", "References".
var sourcesHeadingPattern = regexp.MustCompile(`(?i)^[#*\s]*(sources|references)[*:\s]*$`)

// CitationCheck summarizes how a report cites the sources it was given.
type CitationCheck struct {
	// Inline lists the distinct inline citation labels, in order of appearance.
	Inline []string

	// Listed lists the distinct URLs in the trailing sources section.
	Listed []string

	// HasSourcesSection reports whether a sources heading was found.
	HasSourcesSection bool

	// Uncited lists source URLs never referenced by an inline citation.
	Uncited []string

	// Unlisted lists source URLs missing from the sources section.
	Unlisted []string

	// Unknown lists URLs in the sources section that are not among the sources.
	Unknown []string
}

// OK reports whether every source is cited inline and listed, and nothing
// else is listed.
func (c CitationCheck) OK() bool {
	return c.HasSourcesSection && len(c.Uncited) == 0 && len(c.Unlisted) == 0 && len(c.Unknown) == 0
}

// CheckCitations compares the citations in text with the given sources.
func CheckCitations(text string, sources []types.Result) CitationCheck {
	var c CitationCheck
	c.Inline = inlineCitations(text)

	section, found := sourcesSection(text)
	c.HasSourcesSection = found
	c.Listed = extractURLs(section)

	listed := make(map[string]bool, len(c.Listed))
	for _, u := range c.Listed {
		listed[normalizeURL(u)] = true
	}
	known := make(map[string]bool, len(sources))

	for _, s := range sources {
		norm := normalizeURL(s.URL)
		known[norm] = true
		if !citedInline(s.URL, c.Inline) {
			c.Uncited = append(c.Uncited, s.URL)
		}
		if !listed[norm] {
			c.Unlisted = append(c.Unlisted, s.URL)
		}
	}
	for _, u := range c.Listed {
		if !known[normalizeURL(u)] {
			c.Unknown = append(c.Unknown, u)
		}
	}
	sort.Strings(c.Unknown)
	return c
}

// inlineCitations returns the distinct labels inside [Source: ...] brackets.
// Multi-citations are split on ";" and ",".
func inlineCitations(text string) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, m := range inlineCitationPattern.FindAllStringSubmatch(text, -1) {
		for _, part := range strings.FieldsFunc(m[1], func(r rune) bool { return r == ';' || r == ',' }) {
			label := strings.TrimSpace(part)
			if label != "" && !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	return labels
}

// sourcesSection returns the text after the last sources heading.
func sourcesSection(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if sourcesHeadingPattern.MatchString(strings.TrimSpace(lines[i])) {
			return strings.Join(lines[i+1:], "\n"), true
		}
	}
	return "", false
}

func extractURLs(text string) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, u := range urlPattern.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;:*")
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}

// citedInline reports whether any inline label names the source, either by
// full URL or by host (with or without "www.").
func citedInline(sourceURL string, labels []string) bool {
	norm := normalizeURL(sourceURL)
	host := hostOf(sourceURL)
	for _, label := range labels {
		l := strings.ToLower(label)
		if normalizeURL(l) == norm {
			return true
		}
		if host != "" && (hostOf(l) == host || strings.TrimPrefix(l, "www.") == host) {
			return true
		}
	}
	return false
}

// hostOf returns the lowercased host without "www.", accepting bare domains.
func hostOf(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// normalizeURL lowercases scheme and host and drops a trailing slash.
func normalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.TrimRight(strings.ToLower(raw), "/")
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return strings.TrimRight(u.String(), "/")
}
