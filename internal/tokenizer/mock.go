package tokenizer

import (
	"fmt"
	"strings"
)

// MockEncoder is a deterministic Encoder for tests: every whitespace-separated
// field of the input counts as one token.
type MockEncoder struct{}

// Compile-time check that MockEncoder satisfies the Encoder interface.
var _ Encoder = MockEncoder{}

// Encode returns one token id per field. Ids are the field's byte length so
// the output is stable across runs.
func (MockEncoder) Encode(text string) []int {
	fields := strings.Fields(text)
	out := make([]int, len(fields))
	for i, f := range fields {
		out[i] = len(f)
	}
	return out
}

// MockResolver returns a Resolver that hands out MockEncoder for the listed
// models and ErrUnknownModel for everything else. With no models listed every
// name resolves.
func MockResolver(models ...string) Resolver {
	known := make(map[string]bool, len(models))
	for _, m := range models {
		known[m] = true
	}
	return func(model string) (Encoder, error) {
		if len(known) > 0 && !known[model] {
			return nil, fmt.Errorf("%w %q", ErrUnknownModel, model)
		}
		return MockEncoder{}, nil
	}
}
