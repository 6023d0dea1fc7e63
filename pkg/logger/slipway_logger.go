package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type slipwayLogger struct {
	// name defines the name of the logger that is published to log as a scope.
	name string

	// logger defines the instance of a logrus logger.
	logger *logrus.Entry
}

var SlipwayVersion = "unknown"

func newSlipwayLogger(name string) *slipwayLogger {
	newLogger := logrus.New()
	newLogger.SetOutput(os.Stdout)

	sl := &slipwayLogger{
		name: name,
		logger: newLogger.WithFields(logrus.Fields{
			logFieldScope: name,
		}),
	}

	sl.EnableJsonOutput(defaultJsonOutput)

	return sl
}

// EnableJsonOutput enables JSON formatted output logging.
func (l *slipwayLogger) EnableJsonOutput(enabled bool) {
	var formatter logrus.Formatter

	fieldMap := logrus.FieldMap{
		// If the time field name is conflicted, logrus adds a "fields." prefix.
		// So rename to the unused field @time to avoid the confliction.
		logrus.FieldKeyTime:  logFieldTimeStamp,
		logrus.FieldKeyLevel: logFieldLevel,
		logrus.FieldKeyMsg:   logFieldMessage,
	}

	hostname, _ := os.Hostname()
	l.logger.Data = logrus.Fields{
		logFieldScope:    l.logger.Data[logFieldScope],
		logFieldInstance: hostname,
		logFieldVersion:  SlipwayVersion,
	}

	if enabled {
		formatter = &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap:        fieldMap,
		}
	} else {
		formatter = &logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap:        fieldMap,
		}
	}

	l.logger.Logger.SetFormatter(formatter)
}

func (l *slipwayLogger) LogrusEntry() *logrus.Entry {
	return l.logger
}

// SetBuildId sets the build_id field in the log. Default value is an empty string.
func (l *slipwayLogger) SetBuildId(id string) {
	l.logger = l.logger.WithField(logFieldBuildId, id)
}

func toLogrusLevel(lvl LogLevel) logrus.Level {
	// ignore error because it will never happen
	l, _ := logrus.ParseLevel(string(lvl))
	return l
}

// SetLogLevel sets the log output level.
func (l *slipwayLogger) SetLogLevel(logLevel LogLevel) {
	l.logger.Logger.SetLevel(toLogrusLevel(logLevel))
}

// IsLogLevelEnabled returns true if the logger will output this LogLevel.
func (l *slipwayLogger) IsLogLevelEnabled(level LogLevel) bool {
	return l.logger.Logger.IsLevelEnabled(toLogrusLevel(level))
}

// SetOutput sets the destination for the logs.
func (l *slipwayLogger) SetOutput(dst io.Writer) {
	l.logger.Logger.SetOutput(dst)
}

// WithFields returns a logger with the added structured fields.
func (l *slipwayLogger) WithFields(fields map[string]any) Logger {
	return &slipwayLogger{
		name:   l.name,
		logger: l.logger.WithFields(fields),
	}
}

// Info logs a message at level Info.
func (l *slipwayLogger) Info(args ...interface{}) {
	l.logger.Log(logrus.InfoLevel, args...)
}

// Infof logs a formatted message at level Info.
func (l *slipwayLogger) Infof(format string, args ...interface{}) {
	l.logger.Logf(logrus.InfoLevel, format, args...)
}

// Debug logs a message at level Debug.
func (l *slipwayLogger) Debug(args ...interface{}) {
	l.logger.Log(logrus.DebugLevel, args...)
}

// Debugf logs a formatted message at level Debug.
func (l *slipwayLogger) Debugf(format string, args ...interface{}) {
	l.logger.Logf(logrus.DebugLevel, format, args...)
}

// Warn logs a message at level Warn.
func (l *slipwayLogger) Warn(args ...interface{}) {
	l.logger.Log(logrus.WarnLevel, args...)
}

// Warnf logs a formatted message at level Warn.
func (l *slipwayLogger) Warnf(format string, args ...interface{}) {
	l.logger.Logf(logrus.WarnLevel, format, args...)
}

// Error logs a message at level Error.
func (l *slipwayLogger) Error(args ...interface{}) {
	l.logger.Log(logrus.ErrorLevel, args...)
}

// Errorf logs a formatted message at level Error.
func (l *slipwayLogger) Errorf(format string, args ...interface{}) {
	l.logger.Logf(logrus.ErrorLevel, format, args...)
}

// Fatal logs a message at level Fatal then the process will exit with status set to 1.
func (l *slipwayLogger) Fatal(args ...interface{}) {
	l.logger.Fatal(args...)
}

// Fatalf logs a formatted message at level Fatal then the process will exit with status set to 1.
func (l *slipwayLogger) Fatalf(format string, args ...interface{}) {
	l.logger.Fatalf(format, args...)
}
