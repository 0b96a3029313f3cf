// Package logging builds the one *zap.Logger the process uses, the way
// cmd/nerd/main.go builds its CLI logger: a production config whose level
// flips to Debug under --verbose.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger at Info level, or Debug when verbose is true.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// Nop returns a logger that discards everything, for tests and library
// callers that have not opted into logging.
func Nop() *zap.Logger {
	return zap.NewNop()
}
