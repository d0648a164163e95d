package llm

import (
	"context"
	"errors"
	"math"
	"net/http"
	"os"

	"github.com/sashabaranov/go-openai"
)

// APIKeyEnv is the environment variable consulted when no key is passed.
const APIKeyEnv = "OPENAI_API_KEY"

// OrgIDEnv is the environment variable consulted when no organization is
// passed.
const OrgIDEnv = "OPENAI_ORG_ID"

// OpenAIProvider implements Completer using the OpenAI chat-completions API.
type OpenAIProvider struct {
	client  *openai.Client
	baseURL string
}

// Compile-time check that OpenAIProvider satisfies the Completer interface.
var _ Completer = (*OpenAIProvider)(nil)

// OpenAIOption configures an OpenAIProvider.
type OpenAIOption func(*openaiConfig)

type openaiConfig struct {
	apiKey       string
	baseURL      string
	organization string
	httpClient   *http.Client
}

// WithAPIKey sets the API key. If not provided, the provider reads
// OPENAI_API_KEY from the environment.
func WithAPIKey(key string) OpenAIOption {
	return func(c *openaiConfig) {
		c.apiKey = key
	}
}

// WithBaseURL points the provider at an OpenAI-compatible endpoint.
func WithBaseURL(url string) OpenAIOption {
	return func(c *openaiConfig) {
		c.baseURL = url
	}
}

// WithOrganization sets the OpenAI organization header.
func WithOrganization(org string) OpenAIOption {
	return func(c *openaiConfig) {
		c.organization = org
	}
}

// WithHTTPClient replaces the HTTP client. Request timeouts belong here.
func WithHTTPClient(hc *http.Client) OpenAIOption {
	return func(c *openaiConfig) {
		c.httpClient = hc
	}
}

// NewOpenAIProvider creates a new OpenAI provider.
// It returns an error if no API key is available (neither via option nor env).
func NewOpenAIProvider(opts ...OpenAIOption) (*OpenAIProvider, error) {
	var cfg openaiConfig
	for _, o := range opts {
		o(&cfg)
	}

	apiKey := cfg.apiKey
	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnv)
	}
	if apiKey == "" {
		return nil, errors.New("llm: OPENAI_API_KEY not set and no API key provided")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.baseURL != "" {
		clientCfg.BaseURL = cfg.baseURL
	}
	if cfg.organization == "" {
		cfg.organization = os.Getenv(OrgIDEnv)
	}
	if cfg.organization != "" {
		clientCfg.OrgID = cfg.organization
	}
	if cfg.httpClient != nil {
		clientCfg.HTTPClient = cfg.httpClient
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientCfg),
		baseURL: clientCfg.BaseURL,
	}, nil
}

// Complete sends one chat-completion request. Errors from the API client are
// returned as-is so callers can inspect *openai.APIError directly.
func (p *OpenAIProvider) Complete(ctx context.Context, model string, messages []Message, temperature float64) (*Completion, error) {
	msgs := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		msgs[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	// The SDK drops a zero temperature from the payload.
	temp := float32(temperature)
	if temp == 0 {
		temp = math.SmallestNonzeroFloat32
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: temp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// BaseURL returns the API endpoint the provider talks to.
func (p *OpenAIProvider) BaseURL() string {
	return p.baseURL
}
