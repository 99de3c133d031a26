package logger

// NopLogger discards all log entries. Used in tests.
type NopLogger struct{}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return &NopLogger{}
}

func (*NopLogger) Debug(string, ...Field) {}
func (*NopLogger) Info(string, ...Field)  {}
func (*NopLogger) Warn(string, ...Field)  {}
func (*NopLogger) Error(string, ...Field) {}

// With returns the same no-op logger.
func (l *NopLogger) With(...Field) Logger { return l }

// Sync is a no-op.
func (*NopLogger) Sync() error { return nil }
