// Package logger writes colored, prefixed log lines.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
)

const (
	errorColor   = "\033[31m"
	infoColor    = "\033[32m"
	warningColor = "\033[33m"
	colorReset   = "\033[0m"
)

var ErrNilWriter = errors.New("log writer is nil")

// Logger prints "[PREFIX] [LEVEL] message" lines with the prefix in its own color.
type Logger struct {
	logger *log.Logger
}

// New creates a Logger writing to w.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	p := fmt.Sprintf("%s[%s]%s ", color, prefix, colorReset)
	return &Logger{logger: log.New(w, p, log.LstdFlags)}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.print(infoColor, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.print(warningColor, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.print(errorColor, "ERROR", msg)
}

func (l *Logger) print(color, level, msg string) {
	l.logger.Printf("%s[%s]%s %s", color, level, colorReset, msg)
}
