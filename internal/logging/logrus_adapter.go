package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter is the Logger used outside tests. Every derived logger
// shares the same *logrus.Logger and carries its context in entry.
type LogrusAdapter struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// NewLogrusAdapter returns a stderr logger. level is any name logrus
// understands, case-insensitive; unknown names mean info. format "json"
// selects JSON lines, anything else the text formatter.
func NewLogrusAdapter(level, format string) Logger {
	return NewLogrusAdapterWithOutput(level, format, nil)
}

// NewLogrusAdapterWithOutput is NewLogrusAdapter with output sent to out.
// A nil out keeps stderr.
func NewLogrusAdapterWithOutput(level, format string, out io.Writer) Logger {
	logger := logrus.New()
	if out != nil {
		logger.SetOutput(out)
	}
	logger.SetFormatter(formatterFor(format))

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return wrap(logger)
}

// NewLogrusAdapterFromLogger wraps a logger configured elsewhere. nil gets a
// fresh logrus default.
func NewLogrusAdapterFromLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return wrap(logger)
}

// NewDiscardLogger drops everything. The browse UI owns the terminal.
func NewDiscardLogger() Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return wrap(logger)
}

func wrap(logger *logrus.Logger) *LogrusAdapter {
	return &LogrusAdapter{logger: logger, entry: logrus.NewEntry(logger)}
}

func formatterFor(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

func (l *LogrusAdapter) Debug(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Debug(msg)
}

func (l *LogrusAdapter) Info(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Info(msg)
}

func (l *LogrusAdapter) Warn(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Warn(msg)
}

func (l *LogrusAdapter) Error(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Error(msg)
}

// WithError attaches err under logrus' "error" key.
func (l *LogrusAdapter) WithError(err error) Logger {
	return l.derive(l.entry.WithError(err))
}

func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return l.derive(l.entry.WithField(key, value))
}

func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return l.derive(l.entry.WithFields(convertFields(fields)))
}

func (l *LogrusAdapter) derive(entry *logrus.Entry) *LogrusAdapter {
	return &LogrusAdapter{logger: l.logger, entry: entry}
}

// convertFields keeps the last value when a key repeats.
func convertFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
