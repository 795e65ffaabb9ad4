// Package openai implements the provider backend for the OpenAI chat
// completions API via the official SDK.
package openai

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mvessel/askai/pkg/config"
)

// defaultModel is used when the configuration block does not name one.
const defaultModel = "gpt-4o"

// Provider sends one non-streaming chat completion per invocation.
type Provider struct{}

// New returns the openai backend.
func New() *Provider {
	return &Provider{}
}

// Respond performs a single chat completion. The input data, when present,
// is sent as the system message and the composed prompt as the user message.
func (p *Provider) Respond(ctx context.Context, cfg *config.Config, input, prompt string) (string, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if apiKey == "" {
		return "", errors.New("no apiKey in configuration and OPENAI_API_KEY is not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := cfg.Setting("baseURL"); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	model := cfg.Setting("model")
	if model == "" {
		model = defaultModel
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if input != "" {
		messages = append(messages, openai.SystemMessage(input))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}
	if temp, ok := cfg.RequestFloat("temperature"); ok {
		params.Temperature = openai.Float(temp)
	}
	if maxTokens, ok := cfg.RequestInt("maxTokens"); ok {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion choices")
	}
	return completion.Choices[0].Message.Content, nil
}
