// Copyright 2026 The Topwords Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

func init() {
	RegisterFormatter(NewTextFormatter())
}

var (
	colorYellow = color.New(color.FgYellow)
	colorFaint  = color.New(color.Faint)
	colorBold   = color.New(color.Bold)
)

// TextFormatter writes the description for a terminal. Metadata goes on a
// dimmed header line; a truncation notice is printed in yellow.
type TextFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*TextFormatter)(nil)

// NewTextFormatter returns a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the format name.
func (t *TextFormatter) Name() string {
	return "text"
}

// Format writes rec to w.
func (t *TextFormatter) Format(rec *Record, w io.Writer) error {
	header := fmt.Sprintf("%s · %d prompt tokens · %d/%d words", rec.Model, rec.PromptTokens, len(rec.WordsUsed), len(rec.Words))
	if _, err := colorFaint.Fprintln(w, header); err != nil {
		return err
	}
	if rec.Truncated {
		if _, err := colorYellow.Fprintf(w, "truncated to fit the context length: using %d of %d top-words\n", len(rec.WordsUsed), len(rec.Words)); err != nil {
			return err
		}
	}

	if rec.DryRun {
		for _, msg := range rec.Messages {
			if _, err := fmt.Fprintf(w, "\n%s\n%s\n", colorBold.Sprint(strings.ToUpper(msg.Role)), msg.Content); err != nil {
				return err
			}
		}
		return nil
	}

	_, err := fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(rec.Description))
	return err
}
