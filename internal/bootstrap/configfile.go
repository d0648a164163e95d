package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/davetashner/topwords/internal/config"
	"github.com/davetashner/topwords/internal/topword"
)

// starterConfig renders the default .topwords.yaml.
func starterConfig() string {
	return fmt.Sprintf(`# topwords configuration. Flags override these values.
# The API key is read from %s (or a .env file), never from this file.
model: %s
max_context_length: %d
temperature: %g
output_format: text

# Extra system instruction describing the corpus the topics came from.
# corpus_instruction: "The corpus is a collection of news articles."

# Use at most this many leading top-words (0 = all).
# word_limit: 0

# OpenAI-compatible endpoint.
# base_url: https://api.openai.com/v1
`, config.APIKeyEnv, topword.DefaultModel, topword.DefaultMaxContextLength, topword.DefaultTemperature)
}

// GenerateConfig writes a starter .topwords.yaml in dir. An existing file is
// kept unless force is set.
func GenerateConfig(dir string, force bool) (Action, error) {
	path := filepath.Join(dir, config.FileName)

	_, err := FS.Stat(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return Action{}, fmt.Errorf("checking %s: %w", config.FileName, err)
	}
	if exists && !force {
		return Action{
			File:        config.FileName,
			Operation:   "skipped",
			Description: "already exists (use --force to regenerate)",
		}, nil
	}

	if err := FS.WriteFile(path, []byte(starterConfig()), 0o644); err != nil { //nolint:gosec // config holds no secrets
		return Action{}, fmt.Errorf("writing %s: %w", config.FileName, err)
	}

	desc := "created with default settings"
	if exists {
		desc = "regenerated with default settings"
	}
	return Action{File: config.FileName, Operation: "created", Description: desc}, nil
}
