// Copyright 2026 The Topwords Authors
// SPDX-License-Identifier: MIT

// Package topword turns ranked topic-model words into a natural-language
// topic description with a single chat-completion call.
package topword

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/davetashner/topwords/internal/llm"
	"github.com/davetashner/topwords/internal/tokenizer"
)

const (
	// DefaultModel is the chat model used when no override is provided.
	DefaultModel = "gpt-3.5-turbo"

	// DefaultMaxContextLength is the token budget for one request.
	DefaultMaxContextLength = 4000

	// DefaultTemperature is the sampling temperature sent with each request.
	DefaultTemperature = 0.5

	// BasicInstruction is the default system instruction.
	BasicInstruction = "You are a helpful assistant. You are excellent at inferring topics from top-words extracted via topic-modelling. You make sure that everything you output is strictly based on the provided text."
)

// ErrMissingAPIKey is returned by New when the API key is empty.
var ErrMissingAPIKey = errors.New("topword: API key is required")

// Enhancer describes topics from their top-words. It is immutable after
// construction and safe for concurrent use.
type Enhancer struct {
	apiKey            string
	model             string
	maxContextLength  int
	temperature       float64
	basicInstruction  string
	corpusInstruction string

	completer llm.Completer
	tokenizer tokenizer.Resolver
	logger    *slog.Logger
}

// Option configures an Enhancer.
type Option func(*Enhancer)

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(e *Enhancer) {
		e.model = model
	}
}

// WithMaxContextLength sets the token budget used for truncation.
func WithMaxContextLength(n int) Option {
	return func(e *Enhancer) {
		e.maxContextLength = n
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(e *Enhancer) {
		e.temperature = t
	}
}

// WithBasicInstruction replaces the default system instruction.
func WithBasicInstruction(s string) Option {
	return func(e *Enhancer) {
		e.basicInstruction = s
	}
}

// WithCorpusInstruction adds corpus-specific guidance after the system
// instruction. Useful when something is known about the corpus on hand.
func WithCorpusInstruction(s string) Option {
	return func(e *Enhancer) {
		e.corpusInstruction = s
	}
}

// WithCompleter replaces the OpenAI completer built from the API key.
func WithCompleter(c llm.Completer) Option {
	return func(e *Enhancer) {
		e.completer = c
	}
}

// WithTokenizer replaces the tiktoken resolver.
func WithTokenizer(r tokenizer.Resolver) Option {
	return func(e *Enhancer) {
		e.tokenizer = r
	}
}

// WithLogger sets the logger that receives token-count diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Enhancer) {
		e.logger = l
	}
}

// New creates an Enhancer. Unless WithCompleter is given, requests go to the
// OpenAI API authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Enhancer, error) {
	e := &Enhancer{
		apiKey:           apiKey,
		model:            DefaultModel,
		maxContextLength: DefaultMaxContextLength,
		temperature:      DefaultTemperature,
		basicInstruction: BasicInstruction,
		tokenizer:        tokenizer.ForModel,
	}
	for _, o := range opts {
		o(e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	if e.tokenizer == nil {
		e.tokenizer = tokenizer.ForModel
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	if e.completer == nil {
		p, err := llm.NewOpenAIProvider(llm.WithAPIKey(e.apiKey))
		if err != nil {
			return nil, err
		}
		e.completer = p
	}

	return e, nil
}

// Derive returns a copy of e with opts applied on top of its settings. The
// copy shares e's completer unless opts replace it; e is left unchanged.
func (e *Enhancer) Derive(opts ...Option) (*Enhancer, error) {
	d := *e
	for _, o := range opts {
		o(&d)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	if d.tokenizer == nil {
		d.tokenizer = tokenizer.ForModel
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.completer == nil {
		d.completer = e.completer
	}
	return &d, nil
}

func (e *Enhancer) validate() error {
	if e.apiKey == "" {
		return ErrMissingAPIKey
	}
	if e.model == "" {
		return errors.New("topword: model is required")
	}
	if e.maxContextLength <= 0 {
		return fmt.Errorf("topword: max context length must be positive, got %d", e.maxContextLength)
	}
	if e.temperature < 0 || e.temperature > 2 {
		return fmt.Errorf("topword: temperature must be between 0 and 2, got %g", e.temperature)
	}
	return nil
}

// CorpusInstruction returns the configured corpus instruction.
func (e *Enhancer) CorpusInstruction() string { return e.corpusInstruction }

// String identifies the enhancer by model. The API key is never included.
func (e *Enhancer) String() string {
	return fmt.Sprintf("Enhancer(model = %s)", e.model)
}

// Model returns the configured chat model.
func (e *Enhancer) Model() string { return e.model }

// MaxContextLength returns the configured token budget.
func (e *Enhancer) MaxContextLength() int { return e.maxContextLength }

// Temperature returns the configured sampling temperature.
func (e *Enhancer) Temperature() float64 { return e.temperature }

// SystemPrompt returns the system message content: the basic instruction and
// the corpus instruction joined by a single space. The space is kept when the
// corpus instruction is empty.
func (e *Enhancer) SystemPrompt() string {
	return e.basicInstruction + " " + e.corpusInstruction
}

// CountTokens sums the encoded length of every message's content using the
// tokenizer for the configured model.
func (e *Enhancer) CountTokens(messages []llm.Message) (int, error) {
	enc, err := e.tokenizer(e.model)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range messages {
		n += len(enc.Encode(m.Content))
	}
	return n, nil
}

// DescribeCompletion prepares the prompt for words and sends it to the chat
// model, returning the completion unmodified. Errors from the completer are
// returned as-is.
func (e *Enhancer) DescribeCompletion(ctx context.Context, words []string, opts ...DescribeOption) (*llm.Completion, error) {
	p, err := e.Prepare(words, opts...)
	if err != nil {
		return nil, err
	}
	return e.Send(ctx, p)
}

// Send issues the chat request for a prompt built by Prepare. Errors from the
// completer are returned as-is.
func (e *Enhancer) Send(ctx context.Context, p *Prompt) (*llm.Completion, error) {
	return e.completer.Complete(ctx, e.model, p.Messages, e.temperature)
}

// Describe is DescribeCompletion reduced to the first choice's text.
func (e *Enhancer) Describe(ctx context.Context, words []string, opts ...DescribeOption) (string, error) {
	c, err := e.DescribeCompletion(ctx, words, opts...)
	if err != nil {
		return "", err
	}
	return llm.FirstChoiceText(c)
}
