// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: openai-api-key, openrouter-api-key, airtable-api-key,
// github-token, gmail-credentials.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Well-known secret file names.
const (
	KeyOpenAI     = "openai-api-key"
	KeyOpenRouter = "openrouter-api-key"
	KeyAirtable   = "airtable-api-key"
	KeyGitHub     = "github-token"
	KeyGmail      = "gmail-credentials"
)

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

// Fallback returns override when non-empty, otherwise the secret stored
// under key, otherwise "". Config-file values win over secret files so a
// run can be pointed at a different account without touching .secrets/.
func Fallback(secrets map[string]string, key, override string) string {
	if override != "" {
		return override
	}
	return secrets[key]
}
