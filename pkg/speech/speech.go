// Package speech plays a reply through the platform text-to-speech command.
package speech

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Speaker shells out to a synthesizer binary.
type Speaker struct {
	// Command overrides the platform default; the text is passed as the
	// final argument.
	Command []string
}

// New returns a speaker for the current platform: say on macOS, espeak on
// other POSIX systems, PowerShell's speech synthesizer on Windows.
func New() *Speaker {
	switch runtime.GOOS {
	case "darwin":
		return &Speaker{Command: []string{"say"}}
	case "windows":
		return &Speaker{Command: []string{
			"powershell", "-NoProfile", "-Command",
			"Add-Type -AssemblyName System.Speech; (New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak($args[0])",
		}}
	default:
		return &Speaker{Command: []string{"espeak"}}
	}
}

// Speak synthesizes the text and blocks until playback finishes.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	if len(s.Command) == 0 {
		return fmt.Errorf("no speech command configured")
	}
	args := append(s.Command[1:], text)
	cmd := exec.CommandContext(ctx, s.Command[0], args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("speak via %s: %w", s.Command[0], err)
	}
	return nil
}
