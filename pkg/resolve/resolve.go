// Package resolve locates configuration and prompt files by logical name.
//
// An identifier that is itself an existing regular file is read directly.
// Otherwise the name plus the kind's extension is probed in the user
// configuration directory first, then the installation directory.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
)

// Kind selects the search directories and extension for a lookup.
type Kind string

const (
	KindConfig Kind = "config"
	KindPrompt Kind = "prompt"
)

// appDir is the per-user configuration directory name under ~/.config.
const appDir = "askai"

// NotFoundError reports a failed lookup with every directory that was probed.
type NotFoundError struct {
	Identifier string
	Kind       Kind
	Searched   []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s file for %q; searched %v", e.Kind, e.Identifier, e.Searched)
}

// UnsupportedKindError reports a lookup with an unknown kind.
type UnsupportedKindError struct {
	Kind Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported resolve kind %q", e.Kind)
}

// Resolver searches a user directory and an installation directory.
// The zero value is not usable; build one with New or set the roots directly.
type Resolver struct {
	// UserRoot is the per-user configuration root (normally ~/.config/askai).
	UserRoot string
	// InstallRoot is the directory the binary was installed into.
	InstallRoot string
}

// New builds a Resolver rooted at the user's config directory and the
// directory containing the running executable.
func New() (*Resolver, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("determine home directory: %w", err)
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("determine executable path: %w", err)
	}
	return &Resolver{
		UserRoot:    filepath.Join(home, ".config", appDir),
		InstallRoot: filepath.Dir(exe),
	}, nil
}

// dirs returns (userDir, installDir, extension) for a kind.
func (r *Resolver) dirs(kind Kind) (string, string, string, error) {
	switch kind {
	case KindConfig:
		return r.UserRoot, filepath.Join(r.InstallRoot, "config"), ".yaml", nil
	case KindPrompt:
		return filepath.Join(r.UserRoot, "prompts"), filepath.Join(r.InstallRoot, "prompts"), ".txt", nil
	default:
		return "", "", "", &UnsupportedKindError{Kind: kind}
	}
}

// Resolve returns the content of the file the identifier names. Resolution is
// a pure read: it never creates files and never falls back to empty content.
func (r *Resolver) Resolve(identifier string, kind Kind) (string, error) {
	userDir, installDir, ext, err := r.dirs(kind)
	if err != nil {
		return "", err
	}

	// A literal path to an existing regular file bypasses the search.
	if isRegularFile(identifier) {
		return readFile(identifier)
	}

	name := identifier + ext
	for _, dir := range []string{userDir, installDir} {
		candidate := filepath.Join(dir, name)
		if isRegularFile(candidate) {
			return readFile(candidate)
		}
	}
	return "", &NotFoundError{
		Identifier: identifier,
		Kind:       kind,
		Searched:   []string{userDir, installDir},
	}
}

// isRegularFile reports whether path exists and is a regular file.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
