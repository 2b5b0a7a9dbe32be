package pia4go

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var logger atomic.Pointer[logrus.Logger]

func init() {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)

	logger.Store(l)
}

// Logger returns the logger shared by all decoder packages.
func Logger() *logrus.Logger {
	return logger.Load()
}

// SetLogger replaces the shared logger, nil is ignored.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		return
	}

	logger.Store(l)
}
