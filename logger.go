package mqttwire

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level.
type LogLevel int

const (
	// LogLevelDebug is the debug log level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the info log level.
	LogLevelInfo
	// LogLevelWarn is the warn log level.
	LogLevelWarn
	// LogLevelError is the error log level.
	LogLevelError
	// LogLevelNone disables all logging.
	LogLevelNone
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a level name as written in configuration files.
func ParseLogLevel(s string) (LogLevel, bool) {
	switch s {
	case "debug", "DEBUG":
		return LogLevelDebug, true
	case "info", "INFO", "":
		return LogLevelInfo, true
	case "warn", "WARN", "warning":
		return LogLevelWarn, true
	case "error", "ERROR":
		return LogLevelError, true
	case "none", "NONE", "off":
		return LogLevelNone, true
	default:
		return LogLevelInfo, false
	}
}

// LogFields represents key-value pairs for structured logging.
type LogFields map[string]any

// Logger defines the interface for logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, fields LogFields)

	// Info logs an info message.
	Info(msg string, fields LogFields)

	// Warn logs a warning message.
	Warn(msg string, fields LogFields)

	// Error logs an error message.
	Error(msg string, fields LogFields)

	// WithFields returns a new logger with the given fields added.
	WithFields(fields LogFields) Logger

	// Level returns the current log level.
	Level() LogLevel

	// SetLevel sets the log level.
	SetLevel(level LogLevel)
}

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct {
	level LogLevel
}

// NewNoOpLogger creates a new no-op logger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{level: LogLevelNone}
}

// Debug does nothing.
func (n *NoOpLogger) Debug(_ string, _ LogFields) {}

// Info does nothing.
func (n *NoOpLogger) Info(_ string, _ LogFields) {}

// Warn does nothing.
func (n *NoOpLogger) Warn(_ string, _ LogFields) {}

// Error does nothing.
func (n *NoOpLogger) Error(_ string, _ LogFields) {}

// WithFields returns the same logger.
func (n *NoOpLogger) WithFields(_ LogFields) Logger {
	return n
}

// Level returns the log level.
func (n *NoOpLogger) Level() LogLevel {
	return n.level
}

// SetLevel sets the log level.
func (n *NoOpLogger) SetLevel(level LogLevel) {
	n.level = level
}

// LogrusLogger adapts a logrus logger to Logger.
type LogrusLogger struct {
	logger *logrus.Logger
	entry  *logrus.Entry
	level  LogLevel
	child  bool
}

// NewLogrusLogger creates a logger writing text records to w.
func NewLogrusLogger(w io.Writer, level LogLevel) *LogrusLogger {
	if w == nil {
		w = os.Stderr
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	return WrapLogrus(l, level)
}

// WrapLogrus wraps an existing logrus logger, keeping its output and
// formatter. The logrus level is set to match level.
func WrapLogrus(l *logrus.Logger, level LogLevel) *LogrusLogger {
	ll := &LogrusLogger{logger: l, entry: logrus.NewEntry(l)}
	ll.SetLevel(level)
	return ll
}

// Debug logs a debug message.
func (l *LogrusLogger) Debug(msg string, fields LogFields) {
	if l.level <= LogLevelDebug {
		l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
	}
}

// Info logs an info message.
func (l *LogrusLogger) Info(msg string, fields LogFields) {
	if l.level <= LogLevelInfo {
		l.entry.WithFields(logrus.Fields(fields)).Info(msg)
	}
}

// Warn logs a warning message.
func (l *LogrusLogger) Warn(msg string, fields LogFields) {
	if l.level <= LogLevelWarn {
		l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
	}
}

// Error logs an error message.
func (l *LogrusLogger) Error(msg string, fields LogFields) {
	if l.level <= LogLevelError {
		l.entry.WithFields(logrus.Fields(fields)).Error(msg)
	}
}

// WithFields returns a new logger with the given fields added. The child
// shares the logrus backend of l.
func (l *LogrusLogger) WithFields(fields LogFields) Logger {
	return &LogrusLogger{
		logger: l.logger,
		entry:  l.entry.WithFields(logrus.Fields(fields)),
		level:  l.level,
		child:  true,
	}
}

// Level returns the current log level.
func (l *LogrusLogger) Level() LogLevel {
	return l.level
}

// SetLevel sets the log level. On a logger from WithFields it only changes
// that logger's own threshold; the shared logrus backend is raised when the
// child needs more verbosity and is never lowered.
func (l *LogrusLogger) SetLevel(level LogLevel) {
	l.level = level

	lv := logrusLevel(level)
	if !l.child || lv > l.logger.GetLevel() {
		l.logger.SetLevel(lv)
	}
}

func logrusLevel(level LogLevel) logrus.Level {
	switch level {
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelInfo:
		return logrus.InfoLevel
	case LogLevelWarn:
		return logrus.WarnLevel
	case LogLevelError:
		return logrus.ErrorLevel
	default:
		return logrus.PanicLevel
	}
}

// Standard field names for codec logging.
const (
	// LogFieldPacketType is the packet type field.
	LogFieldPacketType = "packet_type"

	// LogFieldPacketID is the packet ID field.
	LogFieldPacketID = "packet_id"

	// LogFieldQoS is the QoS field.
	LogFieldQoS = "qos"

	// LogFieldBytes is the bytes field.
	LogFieldBytes = "bytes"

	// LogFieldOffset is the stream offset field.
	LogFieldOffset = "offset"

	// LogFieldError is the error field.
	LogFieldError = "error"
)
