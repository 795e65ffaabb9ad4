// Package input reads the data the provider receives as system content.
package input

import (
	"fmt"
	"io"
	"os"

	"github.com/mvessel/askai/pkg/terminal"
)

// NoInputError reports an invocation with no file argument and no piped stdin.
type NoInputError struct{}

func (e *NoInputError) Error() string {
	return "no input: pass a file path or pipe data on standard input"
}

// Read returns the input text from path when given, otherwise from stdin.
// Stdin attached to an interactive terminal means nothing was piped in,
// which is an error.
func Read(path string, stdin *os.File) (string, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(b), nil
	}
	if terminal.IsInteractive(stdin) {
		return "", &NoInputError{}
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read standard input: %w", err)
	}
	return string(b), nil
}
