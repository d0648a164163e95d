// Package llm provides the chat-completion transport used to describe topics,
// plus a mock for tests.
package llm

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// Message roles understood by the chat API.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// ErrNoChoices is returned when a completion carries no generated choice.
var ErrNoChoices = errors.New("llm: completion has no choices")

// Message is one role/content pair of a chat request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is the raw chat-completion response returned by the API.
type Completion = openai.ChatCompletionResponse

// Completer abstracts a chat-completion API behind a single synchronous call.
type Completer interface {
	// Complete sends messages to model and returns the unmodified response.
	// Implementations must respect context cancellation and deadlines and
	// must not retry.
	Complete(ctx context.Context, model string, messages []Message, temperature float64) (*Completion, error)
}

// FirstChoiceText returns the message content of the first choice.
func FirstChoiceText(c *Completion) (string, error) {
	if c == nil || len(c.Choices) == 0 {
		return "", ErrNoChoices
	}
	return c.Choices[0].Message.Content, nil
}
