package prompt

import "fmt"

// EmptyPromptError reports an interactive acquisition that produced no text.
type EmptyPromptError struct {
	Source string
}

func (e *EmptyPromptError) Error() string {
	return fmt.Sprintf("empty prompt from %s", e.Source)
}

// EmptyPayloadError reports a composition where both the pre-prompt and the
// prompt ended up empty.
type EmptyPayloadError struct{}

func (e *EmptyPayloadError) Error() string {
	return "nothing to send: both pre-prompt and prompt are empty"
}

// EditorLaunchError reports an editor child process that could not start.
type EditorLaunchError struct {
	Editor string
	Err    error
}

func (e *EditorLaunchError) Error() string {
	return fmt.Sprintf("launch editor %q: %v", e.Editor, e.Err)
}

func (e *EditorLaunchError) Unwrap() error { return e.Err }

// EditorExitError reports an editor child process that exited non-zero.
type EditorExitError struct {
	Editor string
	Code   int
}

func (e *EditorExitError) Error() string {
	return fmt.Sprintf("editor %q exited with status %d", e.Editor, e.Code)
}
