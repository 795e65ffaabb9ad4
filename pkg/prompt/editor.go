package prompt

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/mvessel/askai/pkg/terminal"
)

// editorTemplate seeds the temp file; commented lines are stripped afterward.
const editorTemplate = `# Type your prompt below.
# Lines whose first non-blank character is '#' are ignored.
# Save the file and close the editor when you are done.

`

// EditorSession acquires a prompt by launching the user's editor on a
// temporary file and reading back what was saved.
type EditorSession struct {
	// Terminal carries the editor's interactive I/O even when the process's
	// own standard streams are redirected.
	Terminal terminal.Terminal
	// Logger receives non-fatal warnings (temp file cleanup).
	Logger *zap.Logger
	// LookupEnv resolves $VISUAL and $EDITOR; defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Acquire runs one editor session and returns the stripped, trimmed text.
// The temporary file is removed on every return path.
func (s *EditorSession) Acquire() (string, error) {
	tmp, err := os.CreateTemp("", "askai-prompt-*.txt")
	if err != nil {
		return "", fmt.Errorf("create prompt temp file: %w", err)
	}
	name := tmp.Name()
	defer s.removeTemp(name)

	if _, err := tmp.WriteString(editorTemplate); err != nil {
		tmp.Close()
		return "", fmt.Errorf("seed prompt temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close prompt temp file: %w", err)
	}

	editor := s.editorCommand()
	if err := s.runEditor(editor, name); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read edited prompt: %w", err)
	}
	text := StripComments(string(edited))
	if text == "" {
		return "", &EmptyPromptError{Source: "editor"}
	}
	return text, nil
}

// runEditor starts the editor attached to the controlling terminal and waits
// for it to exit.
func (s *EditorSession) runEditor(editor, file string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return &EditorLaunchError{Editor: editor, Err: errors.New("empty editor command")}
	}
	args := append(parts[1:], file)
	cmd := exec.Command(parts[0], args...)

	// Attach the child to the real terminal so the user can type even when
	// this process's stdin/stdout are pipes. When no terminal is available
	// (CI, tests) the child inherits our streams.
	in, inErr := s.Terminal.OpenInput()
	if inErr == nil {
		defer in.Close()
		cmd.Stdin = in
	} else {
		cmd.Stdin = os.Stdin
	}
	out, outErr := s.Terminal.OpenOutput()
	if outErr == nil {
		defer out.Close()
		cmd.Stdout = out
		cmd.Stderr = out
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return &EditorLaunchError{Editor: editor, Err: err}
	}
	if err := cmd.Wait(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return &EditorExitError{Editor: editor, Code: exit.ExitCode()}
		}
		return &EditorLaunchError{Editor: editor, Err: err}
	}
	return nil
}

// editorCommand picks $VISUAL, then $EDITOR, then the platform default.
func (s *EditorSession) editorCommand() string {
	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// removeTemp deletes the session's temp file; failure is a warning only.
func (s *EditorSession) removeTemp(name string) {
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		if s.Logger != nil {
			s.Logger.Warn("failed to remove prompt temp file",
				zap.String("path", name), zap.Error(err))
		}
	}
}

// StripComments drops every line whose first non-blank character is '#' and
// trims the surrounding whitespace of what remains.
func StripComments(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
