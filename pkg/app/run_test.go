// Tests for the end-to-end invocation flow with fake collaborators.
package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mvessel/askai/pkg/config"
	"github.com/mvessel/askai/pkg/history"
	"github.com/mvessel/askai/pkg/logger"
	"github.com/mvessel/askai/pkg/prompt"
	"github.com/mvessel/askai/pkg/provider"
	"github.com/mvessel/askai/pkg/resolve"
)

// recordingProvider captures what the dispatcher handed it.
type recordingProvider struct {
	reply  string
	err    error
	input  string
	prompt string
	calls  int
}

func (p *recordingProvider) Respond(ctx context.Context, cfg *config.Config, input, promptText string) (string, error) {
	p.calls++
	p.input = input
	p.prompt = promptText
	return p.reply, p.err
}

// newTestApp builds an App over temp directories with a single fake provider.
func newTestApp(t *testing.T, providerName string, prov provider.Provider) (*App, string, *bytes.Buffer) {
	t.Helper()
	user := t.TempDir()
	install := t.TempDir()
	resolver := &resolve.Resolver{UserRoot: user, InstallRoot: install}

	registry := provider.NewRegistry()
	if prov != nil {
		registry.Register(providerName, prov)
	}

	stdout := &bytes.Buffer{}
	app := &App{
		Resolver: resolver,
		Registry: registry,
		Composer: &prompt.Composer{},
		Logger:   logger.Nop(),
		Stdin:    os.Stdin,
		Stdout:   stdout,
	}
	return app, user, stdout
}

func writeConfig(t *testing.T, userRoot, yaml string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(userRoot, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func inputFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestRunLiteralMessage(t *testing.T) {
	prov := &recordingProvider{reply: "the reply"}
	app, user, stdout := newTestApp(t, "openai", prov)
	writeConfig(t, user, "provider: openai\napiKey: x\n")

	err := app.Run(context.Background(), Options{
		InputPath: inputFile(t, "some input data"),
		Message:   "hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prov.prompt != "hi" {
		t.Fatalf("prompt = %q, want hi unchanged", prov.prompt)
	}
	if prov.input != "some input data" {
		t.Fatalf("input = %q", prov.input)
	}
	if stdout.String() != "the reply\n" {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestRunJoinsPrePromptAndMessage(t *testing.T) {
	prov := &recordingProvider{reply: "ok"}
	app, user, _ := newTestApp(t, "openai", prov)
	writeConfig(t, user, "provider: openai\n")
	if err := os.MkdirAll(filepath.Join(user, "prompts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(user, "prompts", "summarize.txt"), []byte("Summarize this."), 0o644); err != nil {
		t.Fatalf("write prompt: %v", err)
	}

	err := app.Run(context.Background(), Options{
		InputPath: inputFile(t, "doc"),
		Message:   "keep it short",
		PrePrompt: "summarize",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prov.prompt != "Summarize this.\nkeep it short" {
		t.Fatalf("prompt = %q", prov.prompt)
	}
}

func TestRunMissingProviderFailsBeforeInput(t *testing.T) {
	app, user, _ := newTestApp(t, "openai", &recordingProvider{})
	writeConfig(t, user, "apiKey: x\n")

	// No input path: if dispatch happened after input reading this would
	// fail with an input error instead.
	err := app.Run(context.Background(), Options{Message: "hi"})
	var missing *provider.MissingProviderError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingProviderError", err)
	}
}

func TestRunUnknownProvider(t *testing.T) {
	app, user, _ := newTestApp(t, "openai", &recordingProvider{})
	writeConfig(t, user, "provider: acme\n")

	err := app.Run(context.Background(), Options{Message: "hi"})
	var notFound *provider.NotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "acme" {
		t.Fatalf("error = %v, want *NotFoundError naming acme", err)
	}
}

func TestRunMissingConfig(t *testing.T) {
	app, _, _ := newTestApp(t, "openai", &recordingProvider{})

	err := app.Run(context.Background(), Options{Message: "hi"})
	var nf *resolve.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *resolve.NotFoundError", err)
	}
}

func TestRunProviderFailurePropagates(t *testing.T) {
	prov := &recordingProvider{err: errors.New("backend down")}
	app, user, _ := newTestApp(t, "openai", prov)
	writeConfig(t, user, "provider: openai\n")

	err := app.Run(context.Background(), Options{
		InputPath: inputFile(t, "doc"),
		Message:   "hi",
	})
	var reqErr *provider.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	prov := &recordingProvider{reply: "saved reply"}
	app, user, stdout := newTestApp(t, "openai", prov)
	writeConfig(t, user, "provider: openai\n")
	outPath := filepath.Join(t.TempDir(), "reply.txt")

	err := app.Run(context.Background(), Options{
		InputPath:  inputFile(t, "doc"),
		Message:    "hi",
		OutputPath: outPath,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(b) != "saved reply" {
		t.Fatalf("output file = %q", b)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout = %q, want nothing when -o is used", stdout.String())
	}
}

func TestRunRecordsHistory(t *testing.T) {
	prov := &recordingProvider{reply: "remembered"}
	app, user, _ := newTestApp(t, "openai", prov)
	writeConfig(t, user, "provider: openai\n")
	app.HistoryPath = filepath.Join(t.TempDir(), "history.db")

	err := app.Run(context.Background(), Options{
		InputPath: inputFile(t, "doc"),
		Message:   "hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store, err := history.Open(app.HistoryPath)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()
	entries, err := store.Recent(context.Background(), 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Reply != "remembered" || entries[0].Provider != "openai" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestRunSkipsHistoryWhenDisabled(t *testing.T) {
	prov := &recordingProvider{reply: "ok"}
	app, user, _ := newTestApp(t, "openai", prov)
	writeConfig(t, user, "provider: openai\n")
	app.HistoryPath = filepath.Join(t.TempDir(), "history.db")

	err := app.Run(context.Background(), Options{
		InputPath: inputFile(t, "doc"),
		Message:   "hi",
		NoHistory: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(app.HistoryPath); !os.IsNotExist(err) {
		t.Fatalf("history database exists despite --no-history (stat err = %v)", err)
	}
}
