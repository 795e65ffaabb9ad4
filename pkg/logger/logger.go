// Package logger builds the zap logger shared by the CLI and its components.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr. Verbose enables debug level and
// stack traces on errors; otherwise only warnings and above are emitted so
// the reply on stdout stays clean for piping.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.DisableStacktrace = true
	}
	return cfg.Build()
}

// Nop returns a logger that discards everything; used as a test default and
// wherever a component tolerates a missing sink.
func Nop() *zap.Logger {
	return zap.NewNop()
}
