// Package prompt turns CLI options into the final prompt payload.
//
// Four acquisition strategies exist and exactly one is used per invocation:
// an editor session, a literal message, an interactive terminal read, or no
// prompt at all when a pre-prompt alone carries the request.
package prompt

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mvessel/askai/pkg/terminal"
)

// Request carries the prompt-related options already parsed by the CLI.
// PrePrompt is the resolved pre-prompt text, not the identifier.
type Request struct {
	UseEditor bool
	Message   string
	PrePrompt string
}

// Composer selects an acquisition strategy and joins the payload. The
// acquisition funcs are injectable so tests can run without a terminal.
type Composer struct {
	AcquireEditor      func() (string, error)
	AcquireInteractive func() (string, error)
	Logger             *zap.Logger
}

// NewComposer wires the composer against the real controlling terminal.
// The scope guarantees terminal-state restoration on signal exits.
func NewComposer(term terminal.Terminal, scope terminal.Scope, logger *zap.Logger) *Composer {
	session := &EditorSession{Terminal: term, Logger: logger}
	return &Composer{
		AcquireEditor: session.Acquire,
		AcquireInteractive: func() (string, error) {
			return CaptureInteractive(term, scope)
		},
		Logger: logger,
	}
}

// Compose picks the prompt source by fixed priority and joins the non-empty
// pre-prompt and prompt with a newline.
//
//  1. editor requested: the editor session supplies the prompt and the
//     literal message is ignored
//  2. literal message present: used as-is
//  3. neither message nor pre-prompt: interactive terminal capture
//  4. pre-prompt only: the pre-prompt alone is the payload
func (c *Composer) Compose(req Request) (string, error) {
	message := strings.TrimSpace(req.Message)
	prePrompt := strings.TrimSpace(req.PrePrompt)

	var prompt string
	switch {
	case req.UseEditor:
		text, err := c.AcquireEditor()
		if err != nil {
			return "", err
		}
		prompt = text
	case message != "":
		prompt = message
	case prePrompt == "":
		text, err := c.AcquireInteractive()
		if err != nil {
			return "", err
		}
		prompt = text
	default:
		// Pre-prompt only; nothing to acquire.
	}

	if c.Logger != nil {
		c.Logger.Debug("prompt composed",
			zap.Bool("editor", req.UseEditor),
			zap.Int("prompt_bytes", len(prompt)),
			zap.Int("pre_prompt_bytes", len(prePrompt)))
	}
	return join(prePrompt, prompt)
}

// CaptureInteractive reads the prompt from the controlling terminal until
// end-of-stream.
func CaptureInteractive(term terminal.Terminal, scope terminal.Scope) (string, error) {
	text, err := terminal.CaptureLines(term, scope)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &EmptyPromptError{Source: "interactive input"}
	}
	return text, nil
}

// join concatenates the non-empty parts with a newline.
func join(prePrompt, prompt string) (string, error) {
	parts := make([]string, 0, 2)
	for _, p := range []string{prePrompt, prompt} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", &EmptyPayloadError{}
	}
	return strings.Join(parts, "\n"), nil
}
