package progress

import (
	"context"
	"log/slog"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
)

// LogSink forwards progress to the logger. It is used when nobody is watching a
// terminal: non-interactive runs and JSON output.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a new log-backed progress sink
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With("component", "progress")}
}

// OnProgress logs progress events at debug level
func (s *LogSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.log.Debug(event.Message, "stage", event.Stage, "current", event.Current, "total", event.Total)
}

// Info logs info messages
func (s *LogSink) Info(message string) {
	s.log.Info(message)
}

// Error logs error messages
func (s *LogSink) Error(message string) {
	s.log.Error(message)
}

// NewProgressSink picks the sink for the configured output mode
func NewProgressSink(cfg *config.RuntimeConfig, log *slog.Logger) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.JSON {
		return NewLogSink(log)
	}
	return NewSpinnerProgressReporter()
}

// Ensure LogSink implements ProgressSink
var _ usecase.ProgressSink = (*LogSink)(nil)
