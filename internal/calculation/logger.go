package calculation

// Logger receives the pipeline's trace output: taxable figures at debug level,
// per-calculation totals at info and locality or allocation problems at warn.
// internal/logging adapts a zap logger to it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything. Engines start with it.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

func loggerOrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
