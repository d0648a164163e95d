package llm

import (
	"context"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// MockResponse defines a canned response for the mock completer.
type MockResponse struct {
	Content string
	Err     error
}

// MockCall records the arguments of one Complete call.
type MockCall struct {
	Model       string
	Messages    []Message
	Temperature float64
}

// MockCompleter is a test double that returns pre-configured responses in
// sequence. After all responses are exhausted, it keeps returning the last one.
// It records every call for later assertion.
type MockCompleter struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []MockCall
	idx       int
}

// Compile-time check that MockCompleter satisfies the Completer interface.
var _ Completer = (*MockCompleter)(nil)

// NewMockCompleter creates a mock that returns the given responses in order.
// If no responses are provided, Complete returns a completion with one empty
// choice.
func NewMockCompleter(responses ...MockResponse) *MockCompleter {
	return &MockCompleter{
		responses: responses,
	}
}

// Complete returns the next canned response and records the call.
// It respects context cancellation.
func (m *MockCompleter) Complete(ctx context.Context, model string, messages []Message, temperature float64) (*Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := make([]Message, len(messages))
	copy(msgs, messages)
	m.calls = append(m.calls, MockCall{Model: model, Messages: msgs, Temperature: temperature})

	var r MockResponse
	if len(m.responses) > 0 {
		r = m.responses[m.idx]
		if m.idx < len(m.responses)-1 {
			m.idx++
		}
	}

	if r.Err != nil {
		return nil, r.Err
	}

	return &Completion{
		ID:     "chatcmpl-mock",
		Object: "chat.completion",
		Model:  model,
		Choices: []openai.ChatCompletionChoice{
			{
				Index: 0,
				Message: openai.ChatCompletionMessage{
					Role:    RoleAssistant,
					Content: r.Content,
				},
				FinishReason: openai.FinishReasonStop,
			},
		},
		Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

// Calls returns a copy of all calls received by this mock.
func (m *MockCompleter) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset clears call history and resets the response index to zero.
func (m *MockCompleter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = nil
	m.idx = 0
}
