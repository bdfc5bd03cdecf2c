package halfedge

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// loggerPtr holds the package logger. Silent until SetLogger is called.
var loggerPtr atomic.Pointer[log.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

func newNopLogger() *log.Logger {
	l := log.New(io.Discard)
	l.SetLevel(log.FatalLevel)
	return l
}

// SetLogger installs the logger used by converters, editors and exporters
// that were not given one with WithLogger. Pass nil to silence logging again.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
func Logger() *log.Logger {
	return loggerPtr.Load()
}
