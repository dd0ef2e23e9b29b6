package logger

var defLogger = NewSlog(InfoLevel, false)

func Debug(msg string, keysAndValues ...any) {
	defLogger.Debug(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	defLogger.Info(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	defLogger.Warn(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	defLogger.Error(msg, keysAndValues...)
}

func SetLevel(level Level) {
	defLogger.SetLevel(level)
}

// GetLogger returns the package default logger, which writes to stderr.
func GetLogger() Logger {
	return defLogger
}

// OrDefault returns l, or the package default logger when l is nil.
func OrDefault(l Logger) Logger {
	if l == nil {
		return defLogger
	}

	return l
}

// WithLevel returns a child of l whose level is set independently of l.
//
// Loggers that can't carry a level of their own are returned unchanged.
func WithLevel(l Logger, level Level) Logger {
	if lv, ok := l.(interface{ WithLevel(Level) Logger }); ok {
		return lv.WithLevel(level)
	}

	return l
}
