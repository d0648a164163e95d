// Copyright 2026 The Topwords Authors
// SPDX-License-Identifier: MIT

// Package wordlist reads ranked top-word lists from files, stdin or
// command-line arguments.
package wordlist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/topwords/internal/testable"
)

// ErrEmpty is returned when a source contains no words.
var ErrEmpty = errors.New("wordlist: no words found")

// Format identifies a word list encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// document is the keyed shape accepted by the structured formats.
type document struct {
	Words []string `json:"words" yaml:"words" toml:"words"`
}

// FormatFromPath picks a format from the file extension. Unknown extensions
// are read as text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// ReadFile reads the word list at path from fsys, picking the format from
// the extension. Decode errors name the path.
func ReadFile(fsys testable.FileSystem, path string) ([]string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words, err := Read(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Read decodes a word list from r. Order is preserved; blank entries are
// dropped and surrounding whitespace is trimmed.
func Read(r io.Reader, format Format) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var words []string
	switch format {
	case FormatText:
		words, err = parseText(data)
	case FormatJSON:
		words, err = parseJSON(data)
	case FormatYAML:
		words, err = parseYAML(data)
	case FormatTOML:
		words, err = parseTOML(data)
	default:
		return nil, fmt.Errorf("wordlist: unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	words = clean(words)
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

// FromArgs splits command-line arguments into words. Each argument may hold
// several comma-separated words.
func FromArgs(args []string) []string {
	var words []string
	for _, a := range args {
		words = append(words, strings.Split(a, ",")...)
	}
	return clean(words)
}

// parseText accepts one word per line, comma-separated lines, or both.
// Lines starting with '#' are comments.
func parseText(data []byte) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Split(line, ",")...)
	}
	return words, sc.Err()
}

func parseJSON(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var words []string
		if err := json.Unmarshal(trimmed, &words); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
		return words, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	return doc.Words, nil
}

func parseYAML(data []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var words []string
		if err := root.Decode(&words); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
		return words, nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return doc.Words, nil
}

func parseTOML(data []byte) ([]string, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing toml: %w", err)
	}
	return doc.Words, nil
}

func clean(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}
