package logger

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// FormatText and FormatJSON are the supported output formats of the structured logger
const (
	FormatText = "text"
	FormatJSON = "json"
)

// logrusLogger writes structured entries through logrus
type logrusLogger struct {
	entry *logrus.Entry
}

// ensure it implements Logger
var _ Logger = &logrusLogger{}

// MakeLogrusLogger is the factory method for a structured logger writing to out.
// Every entry carries the passed in fields.
func MakeLogrusLogger(out io.Writer, format string, verbose bool, fields map[string]interface{}) (Logger, error) {
	l := logrus.New()
	l.Out = out

	switch format {
	case FormatText, "":
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	case FormatJSON:
		l.Formatter = &logrus.JSONFormatter{}
	default:
		return nil, fmt.Errorf("unsupported log format '%s', needs to be one of [%s, %s]", format, FormatText, FormatJSON)
	}

	l.Level = logrus.InfoLevel
	if verbose {
		l.Level = logrus.DebugLevel
	}

	return &logrusLogger{
		entry: l.WithFields(logrus.Fields(fields)),
	}, nil
}

// Info impl
func (l *logrusLogger) Info(msg string) {
	l.entry.Info(msg)
}

// Infof impl
func (l *logrusLogger) Infof(msg string, args ...interface{}) {
	l.entry.Infof(msg, args...)
}

// Error impl
func (l *logrusLogger) Error(msg string) {
	l.entry.Error(msg)
}

// Errorf impl
func (l *logrusLogger) Errorf(msg string, args ...interface{}) {
	l.entry.Errorf(msg, args...)
}
