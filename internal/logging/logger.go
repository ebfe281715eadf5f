package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/google/wire"
)

// LevelEnv overrides the default log level
const LevelEnv = "BOUNTY_LOG_LEVEL"

var LoggingSet = wire.NewSet(
	NewLevel,
	NewLogger,
	wire.Bind(new(usecase.LogLevelSetter), new(*Level)),
)

// Level is the process-wide log level, adjustable after the logger is built
type Level struct {
	slog.LevelVar
}

// NewLevel picks the initial level: --debug wins over BOUNTY_LOG_LEVEL,
// which wins over info.
func NewLevel(cfg *config.RuntimeConfig) *Level {
	l := &Level{}
	l.Set(slog.LevelInfo)
	if val := os.Getenv(LevelEnv); val != "" {
		if parsed, err := ParseLevel(val); err == nil {
			l.Set(parsed)
		}
	}
	if cfg != nil && cfg.Debug {
		l.Set(slog.LevelDebug)
	}
	return l
}

// SetLevel implements usecase.LogLevelSetter
func (l *Level) SetLevel(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}
	l.Set(parsed)
	return nil
}

// ParseLevel maps a level name to a slog level
func ParseLevel(val string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", val)
}

// NewLogger creates the process logger on stderr
func NewLogger(level *Level) *slog.Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo creates a logger writing to w
func NewLoggerTo(w io.Writer, level *Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Time is noise on an interactive terminal
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
