package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/davetashner/topwords/internal/llm"
)

// Record is the result of one describe run as presented to the user.
type Record struct {
	ID           string          `json:"id"`
	Model        string          `json:"model"`
	Words        []string        `json:"words"`
	WordsUsed    []string        `json:"words_used"`
	Truncated    bool            `json:"truncated"`
	PromptTokens int             `json:"prompt_tokens"`
	Description  string          `json:"description"`
	DryRun       bool            `json:"dry_run,omitempty"`
	Messages     []llm.Message   `json:"messages,omitempty"`
	Completion   *llm.Completion `json:"completion,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewRecord returns a Record with a fresh random ID and the current time.
func NewRecord(model string, words []string) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Model:     model,
		Words:     words,
		CreatedAt: time.Now().UTC(),
	}
}
