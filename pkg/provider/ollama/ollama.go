// Package ollama implements the provider backend for a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mvessel/askai/pkg/config"
)

const (
	defaultHost  = "http://localhost:11434"
	defaultModel = "llama3"
)

// Provider posts a single /api/generate request.
type Provider struct {
	// HTTPClient is overridable for tests; nil means http.DefaultClient.
	HTTPClient *http.Client
}

// New returns the ollama backend.
func New() *Provider {
	return &Provider{}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Respond sends the prompt to the Ollama generate endpoint. Input data is
// passed as the request's system text; defaultRequestOptions are forwarded
// verbatim as Ollama options.
func (p *Provider) Respond(ctx context.Context, cfg *config.Config, input, prompt string) (string, error) {
	host := cfg.Setting("host")
	if host == "" {
		host = defaultHost
	}
	model := cfg.Setting("model")
	if model == "" {
		model = defaultModel
	}

	body, err := json.Marshal(generateRequest{
		Model:   model,
		Prompt:  prompt,
		System:  input,
		Stream:  false,
		Options: cfg.DefaultRequestOptions,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(host, "/")+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("ollama returned status %s", res.Status)
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", errors.New("empty response from ollama")
	}
	return out.Response, nil
}
