package topword

import (
	"fmt"
	"strings"

	"github.com/davetashner/topwords/internal/llm"
)

// QueryFunc builds the user message from the words that fit the budget.
type QueryFunc func(words []string) string

// DefaultQuery asks for the common topic of words and its sub-topics.
func DefaultQuery(words []string) string {
	return fmt.Sprintf("Please give me the common topic of those words: %s. Also describe the various aspects and sub-topics of the topic.",
		strings.Join(words, ", "))
}

// wordSeparator is appended to every word when measuring its token cost.
const wordSeparator = ", "

// Prompt is the request prepared for one describe call.
type Prompt struct {
	// Messages holds the system message followed by the user message.
	Messages []llm.Message

	// Words are the top-words that made it into the user message.
	Words []string

	// TokenCount is the cumulative cost of the capped word list plus the
	// system message, measured before truncation.
	TokenCount int

	// Truncated reports whether words were dropped to fit the budget.
	Truncated bool
}

// DescribeOption configures a single describe call.
type DescribeOption func(*describeConfig)

type describeConfig struct {
	limit    int
	hasLimit bool
	query    QueryFunc
}

// WithWordLimit uses at most n leading words. A limit above the list length
// uses the whole list.
func WithWordLimit(n int) DescribeOption {
	return func(c *describeConfig) {
		c.limit = n
		c.hasLimit = true
	}
}

// WithQuery replaces DefaultQuery.
func WithQuery(q QueryFunc) DescribeOption {
	return func(c *describeConfig) {
		c.query = q
	}
}

// Prepare caps words, truncates them to the context budget and builds the
// chat messages without contacting the API.
//
// Each word costs the tokens of word+", "; the system message is a fixed
// overhead. When the running total for the full list exceeds the budget, the
// list is cut at the first index whose running total exceeds it.
func (e *Enhancer) Prepare(words []string, opts ...DescribeOption) (*Prompt, error) {
	cfg := describeConfig{query: DefaultQuery}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.query == nil {
		cfg.query = DefaultQuery
	}

	n := len(words)
	if cfg.hasLimit {
		if cfg.limit < 0 {
			return nil, fmt.Errorf("topword: word limit must be non-negative, got %d", cfg.limit)
		}
		n = min(cfg.limit, n)
	}

	enc, err := e.tokenizer(e.model)
	if err != nil {
		return nil, err
	}

	system := e.SystemPrompt()
	total := len(enc.Encode(system))
	cut := -1
	for i, w := range words[:n] {
		total += len(enc.Encode(w + wordSeparator))
		if cut < 0 && total > e.maxContextLength {
			cut = i
		}
	}

	e.logger.Info("topword prompt token count", "tokens", total, "max_context_length", e.maxContextLength)

	used := n
	truncated := false
	if n > 0 && total > e.maxContextLength {
		// cut is set: the final running total is over budget.
		used = cut
		truncated = true
		e.logger.Warn("too many topwords for the context length, using only the leading part",
			"words_used", used, "words_given", n)
	}

	kept := make([]string, used)
	copy(kept, words[:used])

	return &Prompt{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: cfg.query(kept)},
		},
		Words:      kept,
		TokenCount: total,
		Truncated:  truncated,
	}, nil
}
