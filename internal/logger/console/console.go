package console

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger writes leveled, timestamped lines to a terminal
type Logger struct {
	logger *log.Logger
}

// Params configures a console logger
type Params struct {
	Level  string    // debug, info, warn, error (default info)
	Output io.Writer // defaults to stderr
}

// New creates a console logger
func New(params Params) *Logger {
	out := params.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		logger: log.NewWithOptions(out, log.Options{
			ReportTimestamp: true,
			Level:           parseLevel(params.Level),
			Prefix:          "annoteval",
		}),
	}
}

func parseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func (l *Logger) Debug(message string, keyvals ...any) { l.logger.Debug(message, keyvals...) }
func (l *Logger) Info(message string, keyvals ...any)  { l.logger.Info(message, keyvals...) }
func (l *Logger) Warn(message string, keyvals ...any)  { l.logger.Warn(message, keyvals...) }
func (l *Logger) Error(message string, keyvals ...any) { l.logger.Error(message, keyvals...) }
