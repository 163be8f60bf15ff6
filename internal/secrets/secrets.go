// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from the environment, a .env file, and a
// directory of plain-text files. In the directory each file is one secret:
// the filename is the key name and the trimmed contents are the value.
//
// Supported key files: groq-api-key, tavily-api-key, jina-api-key, anthropic-api-key.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pdiddy/research-agent/pkg/types"
)

// key pairs a secrets-directory filename with its environment variable.
type key struct {
	file string
	env  string
}

var (
	groqKey      = key{"groq-api-key", "GROQ_API_KEY"}
	tavilyKey    = key{"tavily-api-key", "TAVILY_API_KEY"}
	jinaKey      = key{"jina-api-key", "JINA_API_KEY"}
	anthropicKey = key{"anthropic-api-key", "ANTHROPIC_API_KEY"}
)

// Credentials holds the resolved API keys. Empty means not configured.
type Credentials struct {
	Groq      string
	Tavily    string
	Jina      string
	Anthropic string

	// Sources maps each resolved environment variable to where it came
	// from: "env", the .env path, or the secrets directory.
	Sources map[string]string
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotenv parses a .env file without touching the process environment.
// A missing file returns an empty map.
func LoadDotenv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return vars, nil
}

// Resolve looks up each key in the environment first, then the .env file,
// then the secrets directory. lookup is usually os.LookupEnv.
func Resolve(dir, envFile string, lookup func(string) (string, bool)) (Credentials, error) {
	files, err := Load(dir)
	if err != nil {
		return Credentials{}, err
	}
	dotenv, err := LoadDotenv(envFile)
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{Sources: map[string]string{}}
	get := func(k key) string {
		if v, ok := lookup(k.env); ok && strings.TrimSpace(v) != "" {
			creds.Sources[k.env] = "env"
			return strings.TrimSpace(v)
		}
		if v := strings.TrimSpace(dotenv[k.env]); v != "" {
			creds.Sources[k.env] = envFile
			return v
		}
		if v := files[k.file]; v != "" {
			creds.Sources[k.env] = filepath.Join(dir, k.file)
			return v
		}
		return ""
	}

	creds.Groq = get(groqKey)
	creds.Tavily = get(tavilyKey)
	creds.Jina = get(jinaKey)
	creds.Anthropic = get(anthropicKey)
	return creds, nil
}

// LLMKey returns the key for the given language-model provider.
func (c Credentials) LLMKey(provider types.LLMProvider) string {
	if provider == types.ProviderAnthropic {
		return c.Anthropic
	}
	return c.Groq
}

// Require checks that every key the configured backends need is present.
// The local reader needs no key.
func (c Credentials) Require(provider types.LLMProvider, reader types.ReaderBackend) error {
	var missing []string
	switch provider {
	case types.ProviderAnthropic:
		if c.Anthropic == "" {
			missing = append(missing, anthropicKey.env)
		}
	default:
		if c.Groq == "" {
			missing = append(missing, groqKey.env)
		}
	}
	if c.Tavily == "" {
		missing = append(missing, tavilyKey.env)
	}
	if reader != types.ReaderLocal && c.Jina == "" {
		missing = append(missing, jinaKey.env)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s (set the environment variable, a .env entry, or a file in .secrets/)",
			strings.Join(missing, ", "))
	}
	return nil
}
