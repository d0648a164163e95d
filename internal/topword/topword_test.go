// Copyright 2026 The Topwords Authors
// SPDX-License-Identifier: MIT

package topword_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/davetashner/topwords/internal/llm"
	"github.com/davetashner/topwords/internal/tokenizer"
	"github.com/davetashner/topwords/internal/topword"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// defaultInstructionTokens is the MockEncoder cost of BasicInstruction + " ".
const defaultInstructionTokens = 30

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEnhancer builds an Enhancer wired to mocks.
func newTestEnhancer(t *testing.T, mock *llm.MockCompleter, opts ...topword.Option) *topword.Enhancer {
	t.Helper()
	base := []topword.Option{
		topword.WithCompleter(mock),
		topword.WithTokenizer(tokenizer.MockResolver()),
		topword.WithLogger(quietLogger()),
	}
	e, err := topword.New("test-key", append(base, opts...)...)
	require.NoError(t, err)
	return e
}

func fiftyWords() []string {
	words := []string{"apple", "banana", "cherry"}
	for i := len(words); i < 49; i++ {
		words = append(words, fmt.Sprintf("fruit%02d", i))
	}
	return append(words, "durian")
}

func TestNew_Defaults(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())
	assert.Equal(t, "gpt-3.5-turbo", e.Model())
	assert.Equal(t, 4000, e.MaxContextLength())
	assert.Equal(t, 0.5, e.Temperature())
	assert.Equal(t, topword.BasicInstruction+" ", e.SystemPrompt())
}

func TestNew_Options(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter(),
		topword.WithModel("gpt-4"),
		topword.WithMaxContextLength(8000),
		topword.WithTemperature(0),
		topword.WithBasicInstruction("Describe topics."),
		topword.WithCorpusInstruction("The corpus is news articles."),
	)
	assert.Equal(t, "gpt-4", e.Model())
	assert.Equal(t, 8000, e.MaxContextLength())
	assert.Equal(t, 0.0, e.Temperature())
	assert.Equal(t, "Describe topics. The corpus is news articles.", e.SystemPrompt())
}

func TestNew_Validation(t *testing.T) {
	mock := topword.WithCompleter(llm.NewMockCompleter())
	tests := []struct {
		name   string
		apiKey string
		opts   []topword.Option
		errMsg string
	}{
		{"missing key", "", nil, "API key is required"},
		{"empty model", "k", []topword.Option{topword.WithModel("")}, "model is required"},
		{"zero context", "k", []topword.Option{topword.WithMaxContextLength(0)}, "max context length"},
		{"negative temperature", "k", []topword.Option{topword.WithTemperature(-0.1)}, "temperature"},
		{"temperature too high", "k", []topword.Option{topword.WithTemperature(2.5)}, "temperature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := topword.New(tt.apiKey, append([]topword.Option{mock}, tt.opts...)...)
			assert.Nil(t, e)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNew_MissingAPIKeySentinel(t *testing.T) {
	_, err := topword.New("")
	assert.ErrorIs(t, err, topword.ErrMissingAPIKey)
}

func TestNew_BuildsOpenAICompleter(t *testing.T) {
	e, err := topword.New("sk-test", topword.WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestEnhancer_String(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter(), topword.WithModel("gpt-4"))
	assert.Equal(t, "Enhancer(model = gpt-4)", e.String())
	assert.NotContains(t, fmt.Sprint(e), "test-key")
}

func TestDerive_OverridesWithoutMutating(t *testing.T) {
	mock := llm.NewMockCompleter(llm.MockResponse{Content: "ok"})
	e := newTestEnhancer(t, mock, topword.WithCorpusInstruction("news"))

	d, err := e.Derive(topword.WithCorpusInstruction("recipes"))
	require.NoError(t, err)

	assert.Equal(t, "recipes", d.CorpusInstruction())
	assert.Equal(t, "news", e.CorpusInstruction())
	assert.Equal(t, e.Model(), d.Model())

	_, err = d.Describe(context.Background(), []string{"flour"})
	require.NoError(t, err)
	calls := mock.Calls()
	require.Len(t, calls, 1, "derived enhancer shares the completer")
	assert.True(t, strings.HasSuffix(calls[0].Messages[0].Content, " recipes"))
}

func TestDerive_Validates(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())
	_, err := e.Derive(topword.WithMaxContextLength(0))
	assert.Error(t, err)
}

func TestCountTokens_Empty(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())

	n, err := e.CountTokens(nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = e.CountTokens([]llm.Message{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCountTokens_SumsContent(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())

	n, err := e.CountTokens([]llm.Message{
		{Role: llm.RoleSystem, Content: "one two three"},
		{Role: llm.RoleUser, Content: "four five"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestCountTokens_RoleIsNotCounted(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())

	n, err := e.CountTokens([]llm.Message{{Role: llm.RoleSystem}})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCountTokens_Additive(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())

	a := []llm.Message{
		{Role: llm.RoleSystem, Content: topword.BasicInstruction},
		{Role: llm.RoleUser, Content: "dog, cat"},
	}
	b := []llm.Message{
		{Role: llm.RoleAssistant, Content: "Pets are the common topic."},
	}

	na, err := e.CountTokens(a)
	require.NoError(t, err)
	nb, err := e.CountTokens(b)
	require.NoError(t, err)
	nab, err := e.CountTokens(append(append([]llm.Message{}, a...), b...))
	require.NoError(t, err)

	assert.Equal(t, na+nb, nab)
}

func TestCountTokens_UnknownModel(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter(),
		topword.WithModel("gpt-9"),
		topword.WithTokenizer(tokenizer.MockResolver("gpt-3.5-turbo")),
	)

	_, err := e.CountTokens([]llm.Message{{Role: llm.RoleUser, Content: "x"}})
	assert.ErrorIs(t, err, tokenizer.ErrUnknownModel)
}

func TestPrepare_NoTruncation(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())

	p, err := e.Prepare([]string{"dog", "cat"})
	require.NoError(t, err)

	assert.False(t, p.Truncated)
	assert.Equal(t, []string{"dog", "cat"}, p.Words)
	assert.Equal(t, defaultInstructionTokens+2, p.TokenCount)

	require.Len(t, p.Messages, 2)
	assert.Equal(t, llm.RoleSystem, p.Messages[0].Role)
	assert.Equal(t, topword.BasicInstruction+" ", p.Messages[0].Content)
	assert.Equal(t, llm.RoleUser, p.Messages[1].Role)
	assert.Equal(t,
		"Please give me the common topic of those words: dog, cat. Also describe the various aspects and sub-topics of the topic.",
		p.Messages[1].Content)
}

func TestPrepare_ExactlyAtBudgetIsNotTruncated(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter(), topword.WithMaxContextLength(defaultInstructionTokens+2))

	p, err := e.Prepare([]string{"dog", "cat"})
	require.NoError(t, err)
	assert.False(t, p.Truncated)
	assert.Equal(t, []string{"dog", "cat"}, p.Words)
}

func TestPrepare_TruncationBoundary(t *testing.T) {
	// Word costs 3, 1, 2 with a one-token instruction give running totals
	// 4, 5, 7.
	words := []string{"a b c", "d", "e f"}

	tests := []struct {
		name      string
		max       int
		want      []string
		truncated bool
	}{
		{"fits", 7, []string{"a b c", "d", "e f"}, false},
		{"crosses at third word", 6, []string{"a b c", "d"}, true},
		{"crosses at third word again", 5, []string{"a b c", "d"}, true},
		{"crosses at second word", 4, []string{"a b c"}, true},
		{"crosses at first word", 3, []string{}, true},
		{"instruction alone over budget", 1, []string{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnhancer(t, llm.NewMockCompleter(),
				topword.WithBasicInstruction("x"),
				topword.WithMaxContextLength(tt.max),
			)
			p, err := e.Prepare(words)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Words)
			assert.Equal(t, tt.truncated, p.Truncated)
			assert.Equal(t, 7, p.TokenCount)
		})
	}
}

func TestPrepare_TruncatedListIsStrictPrefix(t *testing.T) {
	words := fiftyWords()
	e := newTestEnhancer(t, llm.NewMockCompleter(), topword.WithMaxContextLength(40))

	p, err := e.Prepare(words)
	require.NoError(t, err)

	// Running total at index k is 30 + k + 1; the first k above 40 is 10.
	require.True(t, p.Truncated)
	assert.Len(t, p.Words, 10)
	assert.Equal(t, words[:10], p.Words)
	assert.Equal(t, defaultInstructionTokens+50, p.TokenCount)
}

func TestPrepare_FiftyWordsLowBudget(t *testing.T) {
	words := fiftyWords()
	e := newTestEnhancer(t, llm.NewMockCompleter(),
		topword.WithBasicInstruction("Describe topics."),
		topword.WithMaxContextLength(20),
	)

	p, err := e.Prepare(words)
	require.NoError(t, err)

	// Instruction costs 2, so the running total first exceeds 20 at index 18.
	require.True(t, p.Truncated)
	assert.Len(t, p.Words, 18)
	assert.Less(t, len(p.Words), 50)
	assert.NotContains(t, p.Messages[1].Content, "durian")
	assert.Contains(t, p.Messages[1].Content, "apple")
}

func TestPrepare_DoesNotMutateInput(t *testing.T) {
	words := fiftyWords()
	orig := append([]string(nil), words...)
	e := newTestEnhancer(t, llm.NewMockCompleter(), topword.WithMaxContextLength(35))

	p, err := e.Prepare(words)
	require.NoError(t, err)
	require.NotEmpty(t, p.Words)

	p.Words[0] = "changed"
	assert.Equal(t, orig, words)
}

func TestPrepare_WordLimit(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())
	words := []string{"dog", "cat", "hamster"}

	p, err := e.Prepare(words, topword.WithWordLimit(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"dog", "cat"}, p.Words)
	assert.Equal(t, defaultInstructionTokens+2, p.TokenCount)
	assert.False(t, p.Truncated)

	p, err = e.Prepare(words, topword.WithWordLimit(10))
	require.NoError(t, err)
	assert.Equal(t, words, p.Words)

	p, err = e.Prepare(words, topword.WithWordLimit(0))
	require.NoError(t, err)
	assert.Empty(t, p.Words)
}

func TestPrepare_NegativeWordLimit(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())

	_, err := e.Prepare([]string{"dog"}, topword.WithWordLimit(-1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestPrepare_EmptyWords(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())

	p, err := e.Prepare(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Words)
	assert.False(t, p.Truncated)
	assert.Equal(t, defaultInstructionTokens, p.TokenCount)
}

func TestPrepare_CustomQuery(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter(),
		topword.WithBasicInstruction("Describe topics."),
		topword.WithMaxContextLength(5),
	)
	query := func(words []string) string {
		return "WORDS: " + strings.Join(words, "|")
	}

	p, err := e.Prepare([]string{"alpha", "beta", "gamma", "delta", "epsilon"}, topword.WithQuery(query))
	require.NoError(t, err)

	// Running totals 3, 4, 5, 6, 7: first above 5 at index 3.
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, p.Words)
	assert.Equal(t, "WORDS: alpha|beta|gamma", p.Messages[1].Content)
}

func TestPrepare_NilQueryFallsBackToDefault(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter())

	p, err := e.Prepare([]string{"dog"}, topword.WithQuery(nil))
	require.NoError(t, err)
	assert.Equal(t, topword.DefaultQuery([]string{"dog"}), p.Messages[1].Content)
}

func TestPrepare_CorpusInstructionJoinedWithSpace(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter(),
		topword.WithBasicInstruction("Base."),
		topword.WithCorpusInstruction("Corpus."),
	)

	p, err := e.Prepare([]string{"dog"})
	require.NoError(t, err)
	assert.Equal(t, "Base. Corpus.", p.Messages[0].Content)
}

func TestPrepare_UnknownModel(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter(),
		topword.WithModel("gpt-9"),
		topword.WithTokenizer(tokenizer.MockResolver("gpt-3.5-turbo")),
	)

	_, err := e.Prepare([]string{"dog"})
	assert.ErrorIs(t, err, tokenizer.ErrUnknownModel)
}

func TestPrepare_LogsTokenCount(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	e := newTestEnhancer(t, llm.NewMockCompleter(), topword.WithLogger(logger))

	_, err := e.Prepare([]string{"dog", "cat"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, fmt.Sprintf("tokens=%d", defaultInstructionTokens+2))
	assert.NotContains(t, out, "words_used")
}

func TestPrepare_LogsWordsUsedOnTruncation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	e := newTestEnhancer(t, llm.NewMockCompleter(),
		topword.WithLogger(logger),
		topword.WithMaxContextLength(40),
	)

	_, err := e.Prepare(fiftyWords())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "tokens=80")
	assert.Contains(t, out, "words_used=10")
	assert.Contains(t, out, "level=WARN")
}

func TestSend_UsesPreparedMessages(t *testing.T) {
	mock := llm.NewMockCompleter(llm.MockResponse{Content: "a topic"})
	e := newTestEnhancer(t, mock, topword.WithTemperature(0.2))

	p, err := e.Prepare([]string{"dog", "cat"})
	require.NoError(t, err)

	c, err := e.Send(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "a topic", c.Choices[0].Message.Content)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, p.Messages, calls[0].Messages)
	assert.InDelta(t, 0.2, calls[0].Temperature, 1e-9)
}

func TestDescribeCompletion_SendsPrompt(t *testing.T) {
	mock := llm.NewMockCompleter(llm.MockResponse{Content: "Pets."})
	e := newTestEnhancer(t, mock, topword.WithTemperature(0.3))

	c, err := e.DescribeCompletion(context.Background(), []string{"dog", "cat"})
	require.NoError(t, err)
	require.NotNil(t, c)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "gpt-3.5-turbo", calls[0].Model)
	assert.Equal(t, 0.3, calls[0].Temperature)
	require.Len(t, calls[0].Messages, 2)
	assert.Equal(t, topword.BasicInstruction+" ", calls[0].Messages[0].Content)
	assert.Contains(t, calls[0].Messages[1].Content, "dog, cat")
}

func TestDescribeCompletion_ReturnsCompletionUnmodified(t *testing.T) {
	mock := llm.NewMockCompleter(llm.MockResponse{Content: "Pets."})
	e := newTestEnhancer(t, mock)

	c, err := e.DescribeCompletion(context.Background(), []string{"dog"})
	require.NoError(t, err)
	assert.Equal(t, "chatcmpl-mock", c.ID)
	assert.Equal(t, 15, c.Usage.TotalTokens)
}

func TestDescribeCompletion_CustomQueryUsedVerbatim(t *testing.T) {
	mock := llm.NewMockCompleter()
	e := newTestEnhancer(t, mock)

	_, err := e.DescribeCompletion(context.Background(), []string{"dog", "cat"},
		topword.WithQuery(func(w []string) string { return fmt.Sprintf("%d words", len(w)) }))
	require.NoError(t, err)

	assert.Equal(t, "2 words", mock.Calls()[0].Messages[1].Content)
}

func TestDescribeCompletion_RemoteErrorUnchanged(t *testing.T) {
	apiErr := errors.New("401 unauthorized")
	mock := llm.NewMockCompleter(llm.MockResponse{Err: apiErr})
	e := newTestEnhancer(t, mock)

	c, err := e.DescribeCompletion(context.Background(), []string{"dog"})
	assert.Nil(t, c)
	assert.Same(t, apiErr, err)
	assert.Len(t, mock.Calls(), 1, "no retry")
}

func TestDescribeCompletion_TokenizerErrorSkipsRequest(t *testing.T) {
	mock := llm.NewMockCompleter()
	e := newTestEnhancer(t, mock,
		topword.WithModel("gpt-9"),
		topword.WithTokenizer(tokenizer.MockResolver("gpt-3.5-turbo")),
	)

	_, err := e.DescribeCompletion(context.Background(), []string{"dog"})
	assert.ErrorIs(t, err, tokenizer.ErrUnknownModel)
	assert.Empty(t, mock.Calls())
}

func TestDescribe_EqualsFirstChoiceContent(t *testing.T) {
	mock := llm.NewMockCompleter(llm.MockResponse{Content: "The topic is pets."})
	e := newTestEnhancer(t, mock)
	ctx := context.Background()

	c, err := e.DescribeCompletion(ctx, []string{"dog", "cat"})
	require.NoError(t, err)

	text, err := e.Describe(ctx, []string{"dog", "cat"})
	require.NoError(t, err)

	assert.Equal(t, c.Choices[0].Message.Content, text)
	assert.Equal(t, "The topic is pets.", text)
	assert.Equal(t, mock.Calls()[0], mock.Calls()[1])
}

func TestDescribe_RemoteError(t *testing.T) {
	apiErr := errors.New("rate limited")
	e := newTestEnhancer(t, llm.NewMockCompleter(llm.MockResponse{Err: apiErr}))

	text, err := e.Describe(context.Background(), []string{"dog"})
	assert.Empty(t, text)
	assert.Same(t, apiErr, err)
}

func TestDescribe_NoChoices(t *testing.T) {
	e := newTestEnhancer(t, llm.NewMockCompleter(), topword.WithCompleter(emptyCompleter{}))

	_, err := e.Describe(context.Background(), []string{"dog"})
	assert.ErrorIs(t, err, llm.ErrNoChoices)
}

// emptyCompleter returns a completion without choices.
type emptyCompleter struct{}

func (emptyCompleter) Complete(context.Context, string, []llm.Message, float64) (*llm.Completion, error) {
	return &llm.Completion{ID: "empty"}, nil
}
