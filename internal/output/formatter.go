// Package output renders describe results in the supported formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Formatter writes a describe record to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "text", "json", "markdown").
	Name() string

	// Format writes the record to w.
	Format(rec *Record, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, formatNames())
	}
	return f, nil
}

// Names returns the registered format names in sorted order.
func Names() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// formatNames must be called with fmtMu held.
func formatNames() string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
