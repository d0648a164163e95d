package output

import (
	"encoding/json"
	"fmt"
	"io"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONFormatter writes the record, including the raw completion, as JSON.
// Output is indented with two spaces.
type JSONFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes rec as a JSON document followed by a newline.
func (f *JSONFormatter) Format(rec *Record, w io.Writer) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
