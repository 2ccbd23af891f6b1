// Package log provides the coloured, prefixed logger shared by every
// component of the application.
package log

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"strings"

	"github.com/beka-birhanu/vinom-mouse/config"
)

// Logger writes "[PREFIX] [LEVEL] message" lines.
type Logger struct {
	prefix string
	logger *stdlog.Logger
}

// New creates a logger writing to w, its prefix shown in color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("logger needs a writer")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, errors.New("logger needs a prefix")
	}

	return &Logger{
		prefix: fmt.Sprintf("%s[%s]%s ", color, strings.ToUpper(prefix), config.ColorReset),
		logger: stdlog.New(w, "", stdlog.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write(config.LogInfoColor, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write(config.LogWarningColor, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write(config.LogErrorColor, "ERROR", msg)
}

func (l *Logger) write(color, level, msg string) {
	l.logger.Printf("%s%s[%s]%s %s", l.prefix, color, level, config.LogColorReset, msg)
}
