package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/topwords/internal/llm"
	"github.com/davetashner/topwords/internal/topword"
	"github.com/davetashner/topwords/internal/wordlist"
)

// DescribeTopicInput is the input schema for the describe_topic tool.
type DescribeTopicInput struct {
	Words             []string `json:"words" jsonschema:"Top-words of one topic, most representative first"`
	WordLimit         int      `json:"word_limit,omitempty" jsonschema:"Use at most this many leading words (0 = all)"`
	CorpusInstruction string   `json:"corpus_instruction,omitempty" jsonschema:"Extra system instruction describing the corpus the topic came from"`
}

// DescribeTopicOutput is the structured result of describe_topic.
type DescribeTopicOutput struct {
	Description string `json:"description"`
	Model       string `json:"model"`
	WordsUsed   int    `json:"words_used"`
	Truncated   bool   `json:"truncated"`
}

// CountTokensInput is the input schema for the count_tokens tool.
type CountTokensInput struct {
	Words     []string `json:"words" jsonschema:"Top-words of one topic, most representative first"`
	WordLimit int      `json:"word_limit,omitempty" jsonschema:"Use at most this many leading words (0 = all)"`
}

// CountTokensOutput is the structured result of count_tokens.
type CountTokensOutput struct {
	Tokens           int  `json:"tokens"`
	MaxContextLength int  `json:"max_context_length"`
	WordsUsed        int  `json:"words_used"`
	Truncated        bool `json:"truncated"`
}

var errNoWords = errors.New("words must contain at least one non-blank word")

// tools holds the enhancer shared by every handler.
type tools struct {
	enhancer *topword.Enhancer
}

func boolPtr(b bool) *bool { return &b }

// registerTools adds the topwords tools to the MCP server.
func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe_topic",
		Description: "Describe the common topic of a list of topic-model top-words, including its aspects and sub-topics. Calls the configured chat model.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		},
	}, t.handleDescribeTopic)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "count_tokens",
		Description: "Count the prompt tokens describe_topic would send for a list of top-words, after truncation to the context length. Does not call the chat model.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.handleCountTokens)
}

func (t *tools) handleDescribeTopic(ctx context.Context, _ *mcp.CallToolRequest, input DescribeTopicInput) (*mcp.CallToolResult, DescribeTopicOutput, error) {
	var out DescribeTopicOutput

	words, opts, err := prepareInput(input.Words, input.WordLimit)
	if err != nil {
		return nil, out, err
	}

	e := t.enhancer
	if input.CorpusInstruction != "" {
		e, err = e.Derive(topword.WithCorpusInstruction(input.CorpusInstruction))
		if err != nil {
			return nil, out, err
		}
	}

	p, err := e.Prepare(words, opts...)
	if err != nil {
		return nil, out, err
	}
	c, err := e.Send(ctx, p)
	if err != nil {
		return nil, out, fmt.Errorf("describe failed: %w", err)
	}
	text, err := llm.FirstChoiceText(c)
	if err != nil {
		return nil, out, err
	}

	out = DescribeTopicOutput{
		Description: text,
		Model:       e.Model(),
		WordsUsed:   len(p.Words),
		Truncated:   p.Truncated,
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, out, nil
}

func (t *tools) handleCountTokens(_ context.Context, _ *mcp.CallToolRequest, input CountTokensInput) (*mcp.CallToolResult, CountTokensOutput, error) {
	var out CountTokensOutput

	words, opts, err := prepareInput(input.Words, input.WordLimit)
	if err != nil {
		return nil, out, err
	}

	p, err := t.enhancer.Prepare(words, opts...)
	if err != nil {
		return nil, out, err
	}
	n, err := t.enhancer.CountTokens(p.Messages)
	if err != nil {
		return nil, out, err
	}

	out = CountTokensOutput{
		Tokens:           n,
		MaxContextLength: t.enhancer.MaxContextLength(),
		WordsUsed:        len(p.Words),
		Truncated:        p.Truncated,
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%d", n)},
		},
	}, out, nil
}

// prepareInput normalizes the words argument and turns a positive limit into
// a describe option.
func prepareInput(raw []string, limit int) ([]string, []topword.DescribeOption, error) {
	if limit < 0 {
		return nil, nil, fmt.Errorf("word_limit must be non-negative, got %d", limit)
	}
	words := normalizeWords(raw)
	if len(words) == 0 {
		return nil, nil, errNoWords
	}
	var opts []topword.DescribeOption
	if limit > 0 {
		opts = append(opts, topword.WithWordLimit(limit))
	}
	return words, opts, nil
}

// normalizeWords trims entries, splits comma-joined entries and drops blanks.
func normalizeWords(raw []string) []string {
	return wordlist.FromArgs(raw)
}
