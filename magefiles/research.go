//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Research builds the CLI and runs the full pipeline for topic, writing the
// report to output/<slug>.md.
func Research(topic string) error {
	mg.Deps(Build)
	if err := os.MkdirAll("output", 0o755); err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	out := fmt.Sprintf("output/%s.md", slug(topic))
	return sh.RunV("bin/"+binName, "run", topic, "--output", out, "--state", "yaml", "--state-file", out+".state.yaml")
}

// slug lowercases topic and keeps letters and digits, joining words with "-".
func slug(topic string) string {
	var b []rune
	dash := false
	for _, r := range topic {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b = append(b, r)
			dash = false
		case r >= 'A' && r <= 'Z':
			b = append(b, r+('a'-'A'))
			dash = false
		default:
			if len(b) > 0 && !dash {
				b = append(b, '-')
				dash = true
			}
		}
	}
	for len(b) > 0 && b[len(b)-1] == '-' {
		b = b[:len(b)-1]
	}
	if len(b) == 0 {
		return "report"
	}
	return string(b)
}
