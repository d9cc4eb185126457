package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements Client on top of the official OpenAI SDK.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI client for the given model.
func NewOpenAI(model, apiKey string, opts ...option.RequestOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, &authError{message: "OpenAI API key is not set"}
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	var resp Response
	err := retryWithBackoff(ctx, 3, func() error {
		completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(o.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(req.SystemPrompt),
				openai.UserMessage(req.UserPrompt),
			},
			MaxTokens:   openai.Int(int64(maxTokens)),
			Temperature: openai.Float(req.Temperature),
		})
		if err != nil {
			return classifyOpenAIError(err)
		}
		if len(completion.Choices) == 0 {
			return fmt.Errorf("empty completion from model %s", o.model)
		}
		resp = Response{
			Content:    completion.Choices[0].Message.Content,
			TokensUsed: int(completion.Usage.TotalTokens),
		}
		return nil
	})

	return resp, err
}

// classifyOpenAIError maps SDK errors onto the typed errors the retry loop
// understands.
func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return &rateLimitError{}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &authError{message: apiErr.Error()}
		}
	}
	return fmt.Errorf("completion request: %w", err)
}
