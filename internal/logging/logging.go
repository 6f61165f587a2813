// Package logging provides pickterm's optional debug log. The TUI owns the
// terminal, so diagnostics go to a file under the config dir instead of
// stdout/stderr.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to <configDir>/debug.log when debug is set,
// and a no-op logger otherwise.
func New(configDir string, debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{filepath.Join(configDir, "debug.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	return cfg.Build()
}
