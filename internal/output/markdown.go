package output

import (
	"fmt"
	"io"
	"strings"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes the record as a small Markdown document.
type MarkdownFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes a heading, a metadata table, the top-words and the
// description (or the prepared prompt on a dry run).
func (m *MarkdownFormatter) Format(rec *Record, w io.Writer) error {
	var b strings.Builder

	b.WriteString("# Topic Description\n\n")
	b.WriteString("| Field | Value |\n|-------|-------|\n")
	fmt.Fprintf(&b, "| Model | `%s` |\n", rec.Model)
	fmt.Fprintf(&b, "| Prompt tokens | %d |\n", rec.PromptTokens)
	fmt.Fprintf(&b, "| Words used | %d of %d |\n", len(rec.WordsUsed), len(rec.Words))
	if rec.Truncated {
		b.WriteString("| Truncated | yes |\n")
	}
	b.WriteString("\n## Top-words\n\n")
	for _, word := range rec.WordsUsed {
		fmt.Fprintf(&b, "- %s\n", word)
	}

	if rec.DryRun {
		b.WriteString("\n## Prompt\n")
		for _, msg := range rec.Messages {
			fmt.Fprintf(&b, "\n**%s**\n\n%s\n", msg.Role, msg.Content)
		}
	} else {
		b.WriteString("\n## Description\n\n")
		b.WriteString(strings.TrimSpace(rec.Description))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
