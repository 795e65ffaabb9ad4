// Package gemini implements the provider backend for Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/mvessel/askai/pkg/config"
)

const defaultModel = "gemini-2.0-flash"

// Provider sends one generate-content request per invocation.
type Provider struct{}

// New returns the gemini backend.
func New() *Provider {
	return &Provider{}
}

// Respond performs a single content generation. Input data becomes the
// system instruction; the composed prompt is the user content.
func (p *Provider) Respond(ctx context.Context, cfg *config.Config, input, prompt string) (string, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if apiKey == "" {
		return "", errors.New("no apiKey in configuration and GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Setting("model")
	if model == "" {
		model = defaultModel
	}

	genCfg := &genai.GenerateContentConfig{}
	if input != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(input, genai.RoleUser)
	}
	if temp, ok := cfg.RequestFloat("temperature"); ok {
		genCfg.Temperature = genai.Ptr(float32(temp))
	}
	if maxTokens, ok := cfg.RequestInt("maxTokens"); ok {
		genCfg.MaxOutputTokens = int32(maxTokens)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", err
	}
	reply := result.Text()
	if strings.TrimSpace(reply) == "" {
		return "", errors.New("empty response from gemini")
	}
	return reply, nil
}
