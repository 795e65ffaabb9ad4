// Tests for provider registration and dispatch.
package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/mvessel/askai/pkg/config"
)

// fakeProvider returns a fixed reply or error.
type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Respond(ctx context.Context, cfg *config.Config, input, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestLoadMissingProvider(t *testing.T) {
	r := NewRegistry()
	r.Register("openai", &fakeProvider{})

	for _, cfg := range []*config.Config{nil, {}, {Provider: ""}} {
		if _, err := r.Load(cfg); err == nil {
			t.Fatalf("Load(%+v) succeeded, want missing-provider error", cfg)
		} else {
			var missing *MissingProviderError
			if !errors.As(err, &missing) {
				t.Fatalf("error = %v, want *MissingProviderError", err)
			}
		}
	}
}

func TestLoadUnknownProviderNamesIt(t *testing.T) {
	r := NewRegistry()
	r.Register("openai", &fakeProvider{})
	r.Register("ollama", &fakeProvider{})

	_, err := r.Load(&config.Config{Provider: "acme"})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if notFound.Name != "acme" {
		t.Fatalf("name = %q, want acme", notFound.Name)
	}
	if len(notFound.Known) != 2 || notFound.Known[0] != "ollama" || notFound.Known[1] != "openai" {
		t.Fatalf("known = %v", notFound.Known)
	}
}

func TestLoadDispatchesByName(t *testing.T) {
	want := &fakeProvider{reply: "from openai"}
	other := &fakeProvider{reply: "from ollama"}
	r := NewRegistry()
	r.Register("openai", want)
	r.Register("ollama", other)

	p, err := r.Load(&config.Config{Provider: "openai"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reply, err := p.Respond(context.Background(), nil, "input", "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "from openai" {
		t.Fatalf("reply = %q", reply)
	}
	if want.calls != 1 || other.calls != 0 {
		t.Fatalf("calls = %d/%d, want 1/0", want.calls, other.calls)
	}
}

func TestRespondWrapsBackendFailure(t *testing.T) {
	cause := errors.New("connection refused")
	r := NewRegistry()
	r.Register("openai", &fakeProvider{err: cause})

	p, err := r.Load(&config.Config{Provider: "openai"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = p.Respond(context.Background(), nil, "", "hi")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if reqErr.Name != "openai" || !errors.Is(err, cause) {
		t.Fatalf("wrapped error = %+v, want openai wrapping cause", reqErr)
	}
}
