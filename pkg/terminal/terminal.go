// Package terminal gives access to the controlling terminal device.
//
// The process's own standard streams may be redirected (input piped in,
// output piped out), so interactive steps talk to the terminal device
// directly: /dev/tty on POSIX systems, the console device on Windows.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal is the controlling-terminal capability. Implementations open the
// real device; tests substitute pipes.
type Terminal interface {
	// OpenInput opens the terminal for reading keystrokes.
	OpenInput() (*os.File, error)
	// OpenOutput opens the terminal for writing, bypassing stdout.
	OpenOutput() (*os.File, error)
}

// Scope registers cleanups that must run even when the process exits on a
// signal, where plain defers never fire.
type Scope interface {
	// Defer registers cleanup and returns a release func that unregisters
	// it once the guarded section completed normally.
	Defer(cleanup func()) (release func())
}

// Controlling returns the platform controlling-terminal device.
func Controlling() Terminal {
	return device{}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// CaptureLines reads lines from the controlling terminal until end-of-stream
// and joins them with newlines. While the read is active the terminal is in
// raw mode: keystrokes are consumed by this process and never echoed back
// into the shell. The previous terminal state is restored before returning,
// and also on signal exits when a Scope is given.
func CaptureLines(t Terminal, scope Scope) (string, error) {
	in, err := t.OpenInput()
	if err != nil {
		return "", fmt.Errorf("open terminal for read: %w", err)
	}
	defer in.Close()

	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		// Not a real terminal (tests drive this path with pipes); a plain
		// line scan already consumes the stream without echo concerns.
		return scanLines(in)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("set raw mode: %w", err)
	}
	restore := func() { _ = term.Restore(fd, oldState) }
	if scope != nil {
		release := scope.Defer(restore)
		defer release()
	}
	defer restore()

	// Discard as the writer suppresses echo entirely.
	reader := term.NewTerminal(readWriter{Reader: in, Writer: io.Discard}, "")
	var lines []string
	for {
		line, err := reader.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read terminal line: %w", err)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func scanLines(r io.Reader) (string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read input line: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}

// readWriter pairs a reader and writer into an io.ReadWriter.
type readWriter struct {
	io.Reader
	io.Writer
}
