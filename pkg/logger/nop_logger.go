package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

type nopLogger struct{}

func (n *nopLogger) EnableJsonOutput(_ bool) {}

func (n *nopLogger) LogrusEntry() *logrus.Entry {
	return nil
}

func (n *nopLogger) SetBuildId(_ string) {}

func (n *nopLogger) SetLogLevel(_ LogLevel) {}

func (n *nopLogger) SetOutput(_ io.Writer) {}

func (n *nopLogger) IsLogLevelEnabled(_ LogLevel) bool { return true }

func (n *nopLogger) WithFields(_ map[string]any) Logger {
	return n
}

func (n *nopLogger) Info(_ ...interface{}) {}

func (n *nopLogger) Infof(_ string, _ ...interface{}) {}

func (n *nopLogger) Debug(_ ...interface{}) {}

func (n *nopLogger) Debugf(_ string, _ ...interface{}) {}

func (n *nopLogger) Warn(_ ...interface{}) {}

func (n *nopLogger) Warnf(_ string, _ ...interface{}) {}

func (n *nopLogger) Error(_ ...interface{}) {}

func (n *nopLogger) Errorf(_ string, _ ...interface{}) {}

func (n *nopLogger) Fatal(_ ...interface{}) {}

func (n *nopLogger) Fatalf(_ string, _ ...interface{}) {}
