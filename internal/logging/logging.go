// Package logging builds the operational log sink. The TUIs own the
// terminal, so logs never touch stdout: with debug enabled they go to a
// file under the user cache dir, otherwise everything is a no-op. Each
// process run is tagged with a fresh run id for correlating a session's
// entries.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// New returns the process logger. Callers must Sync on shutdown.
func New(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	path, err := logFile()
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.With(zap.String("run", uuid.NewString())), nil
}

func logFile() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	dir := filepath.Join(base, "gemterm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	return filepath.Join(dir, "gemterm.log"), nil
}
