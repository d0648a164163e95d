package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const dotEnvEntry = ".env"

// EnsureGitignore makes sure .env, where the API key may live, is listed in
// dir/.gitignore.
func EnsureGitignore(dir string) (Action, error) {
	path := filepath.Join(dir, ".gitignore")

	content, err := FS.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Action{}, fmt.Errorf("reading .gitignore: %w", err)
	}

	existing := string(content)
	for _, line := range strings.Split(existing, "\n") {
		switch strings.TrimSpace(line) {
		case dotEnvEntry, "/" + dotEnvEntry:
			return Action{
				File:        ".gitignore",
				Operation:   "skipped",
				Description: ".env already ignored",
			}, nil
		}
	}

	if os.IsNotExist(err) {
		if writeErr := FS.WriteFile(path, []byte(dotEnvEntry+"\n"), 0o644); writeErr != nil { //nolint:gosec // not secret
			return Action{}, fmt.Errorf("creating .gitignore: %w", writeErr)
		}
		return Action{File: ".gitignore", Operation: "created", Description: "ignores .env"}, nil
	}

	separator := ""
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		separator = "\n"
	}
	updated := existing + separator + dotEnvEntry + "\n"
	if writeErr := FS.WriteFile(path, []byte(updated), 0o644); writeErr != nil { //nolint:gosec // not secret
		return Action{}, fmt.Errorf("updating .gitignore: %w", writeErr)
	}
	return Action{File: ".gitignore", Operation: "updated", Description: "added .env"}, nil
}
