// Package app wires the components into the single request an invocation
// performs and owns the process lifecycle around it.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mvessel/askai/pkg/config"
	"github.com/mvessel/askai/pkg/history"
	"github.com/mvessel/askai/pkg/input"
	"github.com/mvessel/askai/pkg/prompt"
	"github.com/mvessel/askai/pkg/provider"
	"github.com/mvessel/askai/pkg/resolve"
	"github.com/mvessel/askai/pkg/speech"
)

// Options are the parsed CLI options for one invocation.
type Options struct {
	InputPath  string // positional file argument; empty means stdin
	Message    string // -m/--message
	PrePrompt  string // -p/--pre-prompt, name or path
	ConfigID   string // -c/--config, name or path; empty means "config"
	OutputPath string // -o/--output; empty means stdout
	UseEditor  bool   // -e/--editor
	Speak      bool   // -s/--speak
	NoHistory  bool   // --no-history
}

// App carries the collaborators one invocation needs. Every field is
// injectable; zero fields are filled with sensible production defaults by
// the cmd layer, not here.
type App struct {
	Resolver *resolve.Resolver
	Registry *provider.Registry
	Composer *prompt.Composer
	Speaker  *speech.Speaker
	Logger   *zap.Logger

	// Stdin and Stdout stand in for the process streams so tests can
	// substitute pipes.
	Stdin  *os.File
	Stdout io.Writer

	// HistoryPath locates the interactions database; empty disables
	// persistence entirely.
	HistoryPath string
}

// Run executes one invocation end to end: load config, dispatch the
// provider, gather input and prompt, perform the request, emit the reply.
func (a *App) Run(ctx context.Context, opts Options) error {
	configID := opts.ConfigID
	if configID == "" {
		configID = "config"
	}
	configText, err := a.Resolver.Resolve(configID, resolve.KindConfig)
	if err != nil {
		return err
	}
	cfg, err := config.Parse([]byte(configText))
	if err != nil {
		return err
	}

	// Dispatch before touching input or prompts so a broken configuration
	// fails fast.
	prov, err := a.Registry.Load(cfg)
	if err != nil {
		return err
	}
	a.Logger.Debug("provider dispatched", zap.String("provider", cfg.Provider))

	inputData, err := input.Read(opts.InputPath, a.Stdin)
	if err != nil {
		return err
	}
	a.Logger.Debug("input loaded",
		zap.String("path", opts.InputPath), zap.Int("bytes", len(inputData)))

	var prePrompt string
	if opts.PrePrompt != "" {
		prePrompt, err = a.Resolver.Resolve(opts.PrePrompt, resolve.KindPrompt)
		if err != nil {
			return err
		}
	}

	payload, err := a.Composer.Compose(prompt.Request{
		UseEditor: opts.UseEditor,
		Message:   opts.Message,
		PrePrompt: prePrompt,
	})
	if err != nil {
		return err
	}

	reply, err := prov.Respond(ctx, cfg, inputData, payload)
	if err != nil {
		return err
	}

	if err := a.emit(reply, opts.OutputPath); err != nil {
		return err
	}
	if opts.Speak && a.Speaker != nil {
		if err := a.Speaker.Speak(ctx, reply); err != nil {
			return err
		}
	}
	if !opts.NoHistory {
		a.record(ctx, cfg.Provider, payload, len(inputData), reply)
	}
	return nil
}

// emit writes the reply to the output file or stdout.
func (a *App) emit(reply, outputPath string) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(reply), 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		return nil
	}
	if !strings.HasSuffix(reply, "\n") {
		reply += "\n"
	}
	if _, err := io.WriteString(a.Stdout, reply); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}

// record persists the interaction; failures are warnings only.
func (a *App) record(ctx context.Context, providerName, payload string, inputBytes int, reply string) {
	if a.HistoryPath == "" {
		return
	}
	store, err := history.Open(a.HistoryPath)
	if err != nil {
		a.Logger.Warn("history unavailable", zap.Error(err))
		return
	}
	defer store.Close()
	err = store.Record(ctx, history.Entry{
		Provider:   providerName,
		Prompt:     payload,
		InputBytes: inputBytes,
		Reply:      reply,
	})
	if err != nil {
		a.Logger.Warn("failed to record interaction", zap.Error(err))
	}
}
