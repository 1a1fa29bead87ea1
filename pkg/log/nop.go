package log

import "context"

// nopLogger discards every record. Components that take an optional Logger
// fall back to it so call sites never have to nil-check.
type nopLogger struct{}

// NewNopLogger returns a Logger that discards all records.
func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...any)              {}
func (nopLogger) Info(string, ...any)               {}
func (nopLogger) Warn(string, ...any)               {}
func (nopLogger) Error(string, ...any)              {}
func (nopLogger) With(...any) Logger                { return nopLogger{} }
func (nopLogger) Enabled(context.Context, Level) bool { return false }
