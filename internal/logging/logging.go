// Package logging configures the process-wide zerolog logger. The terminal
// belongs to the TUI, so log output goes to a file.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Open returns a logger writing to path at the given level. Unknown levels
// fall back to info. The returned closer flushes by closing the file.
func Open(path, level string) (zerolog.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(f).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	zerolog.TimeFieldFormat = time.RFC3339

	return logger, f.Close, nil
}
