package providers

import (
	"context"
	"fmt"
)

// Request carries one completion exchange to an LLM provider.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// Response is the raw text output from an LLM provider.
type Response struct {
	Content    string
	TokensUsed int
}

// Client is the provider abstraction reviewers talk to.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New creates a provider client by name. The API key is passed in explicitly;
// providers never read ambient state themselves.
func New(provider, model, apiKey string) (Client, error) {
	switch provider {
	case "openai":
		return NewOpenAI(model, apiKey)
	case "anthropic":
		return NewAnthropic(model, apiKey)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
