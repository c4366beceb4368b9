// Package nflog is the severity-tagged diagnostic channel consumed by
// every component in the core: debug, info, and error lines, each routed
// to the stream the reference implementation's msg() used.
package nflog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	infoLog = newStreamLogger(os.Stdout)
	errLog  = newStreamLogger(os.Stderr)

	debugEnabled = os.Getenv("NFCOMPRESS_DEBUG") != ""
)

func newStreamLogger(out *os.File) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	l.SetLevel(logrus.DebugLevel)
	return l
}

// SetDebug toggles debug-level output at runtime. Debug lines are silent
// unless this has been called with true or NFCOMPRESS_DEBUG was set in the
// environment at startup, standing in for "compiled out in release builds".
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// Debugf logs a debug-level line to stdout. Suppressed unless debug
// output has been enabled.
func Debugf(format string, args ...interface{}) {
	if !debugEnabled {
		return
	}
	infoLog.Debugf(format, args...)
}

// Infof logs an info-level line to stdout.
func Infof(format string, args ...interface{}) {
	infoLog.Infof(format, args...)
}

// Errorf logs an error-level line to stderr.
func Errorf(format string, args ...interface{}) {
	errLog.Errorf(format, args...)
}
