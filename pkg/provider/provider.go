// Package provider dispatches to a named, pluggable AI backend.
//
// Backends register themselves in a Registry at startup; the configuration's
// provider field selects one per invocation. There is no dynamic loading and
// no caching across invocations.
package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mvessel/askai/pkg/config"
)

// Provider generates a reply from the configuration, the opaque input data
// and the composed prompt. Implementations perform a single outbound request;
// the caller never retries.
type Provider interface {
	Respond(ctx context.Context, cfg *config.Config, input, prompt string) (string, error)
}

// MissingProviderError reports a configuration without a provider field.
type MissingProviderError struct{}

func (e *MissingProviderError) Error() string {
	return "configuration is missing the required provider field"
}

// NotFoundError reports an unknown provider name.
type NotFoundError struct {
	Name  string
	Known []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown provider %q; known providers: %s", e.Name, strings.Join(e.Known, ", "))
}

// RequestError wraps a backend failure during the outbound request.
type RequestError struct {
	Name string
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("provider %s request failed: %v", e.Name, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Registry maps provider names to implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Register wires a backend under a name. Call at startup; later registrations
// under the same name replace earlier ones.
func (r *Registry) Register(name string, p Provider) {
	r.providers[name] = p
}

// Known returns the registered provider names, sorted.
func (r *Registry) Known() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load resolves the backend named by cfg.Provider. Request failures from the
// returned provider are wrapped as *RequestError.
func (r *Registry) Load(cfg *config.Config) (Provider, error) {
	if cfg == nil || cfg.Provider == "" {
		return nil, &MissingProviderError{}
	}
	p, ok := r.providers[cfg.Provider]
	if !ok {
		return nil, &NotFoundError{Name: cfg.Provider, Known: r.Known()}
	}
	return &wrapped{name: cfg.Provider, inner: p}, nil
}

// wrapped converts backend errors into *RequestError at the dispatch boundary
// so individual backends stay free of the taxonomy.
type wrapped struct {
	name  string
	inner Provider
}

func (w *wrapped) Respond(ctx context.Context, cfg *config.Config, input, prompt string) (string, error) {
	reply, err := w.inner.Respond(ctx, cfg, input, prompt)
	if err != nil {
		return "", &RequestError{Name: w.name, Err: err}
	}
	return reply, nil
}
