package logger

import (
	"github.com/sirupsen/logrus"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	entry *logrus.Logger
}

func NewLogger(level int) *defaultLogger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	switch level {
	case DEBUG:
		l.SetLevel(logrus.DebugLevel)
	case INFO:
		l.SetLevel(logrus.InfoLevel)
	case WARNING:
		l.SetLevel(logrus.WarnLevel)
	case ERROR:
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.PanicLevel)
	}

	return &defaultLogger{entry: l}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.entry.Debugf(msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.entry.Infof(msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.entry.Warnf(msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.entry.Errorf(msg, a...)
}
