// Package logging is the structured logger every layer of the ledger writes
// through. Code depends on Logger; logrus sits behind it.
package logging

// Logger writes leveled messages with key/value context. The With* methods
// never modify the receiver.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is one piece of log context. Keys come from constants.go.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
