// Package logrus adapts sirupsen/logrus to the domain Logger interface.
// This is in external-adapters to isolate the external dependency.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/ochairo/waxseal/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on top of a logrus.Logger
type Logger struct {
	logger *logrus.Logger
}

// NewLogger creates a logger writing structured entries to stderr
func NewLogger() *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{logger: l}
}

// NewFromLogrus wraps an existing logrus.Logger
func NewFromLogrus(l *logrus.Logger) *Logger {
	return &Logger{logger: l}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.logger.WithFields(toLogrusFields(fields)).Debug(msg)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.logger.WithFields(toLogrusFields(fields)).Info(msg)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.logger.WithFields(toLogrusFields(fields)).Warn(msg)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.logger.WithFields(toLogrusFields(fields)).Error(msg)
}

func toLogrusFields(fields []interfaces.Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
