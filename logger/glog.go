package logger

import (
	"github.com/golang/glog"
)

// GlogLogger implements the Logger interface on top of glog with a configurable call depth,
// so the reported file:line points at the caller of the package level functions.
type GlogLogger struct {
	depth int
}

// Debugf logs at verbosity 2 so debug output stays off by default.
func (logger *GlogLogger) Debugf(msg string, args ...any) {
	if glog.V(2) {
		glog.InfoDepthf(logger.depth, msg, args...)
	}
}

func (logger *GlogLogger) Infof(msg string, args ...any) {
	glog.InfoDepthf(logger.depth, msg, args...)
}

func (logger *GlogLogger) Warnf(msg string, args ...any) {
	glog.WarningDepthf(logger.depth, msg, args...)
}

func (logger *GlogLogger) Errorf(msg string, args ...any) {
	glog.ErrorDepthf(logger.depth, msg, args...)
}

// Fatalf logs a fatal-level message with the specified format and arguments, then exits the application.
func (logger *GlogLogger) Fatalf(msg string, args ...any) {
	glog.FatalDepthf(logger.depth, msg, args...)
}

func NewGlogLogger() Logger {
	// one frame for the package level function, one for the method itself
	return &GlogLogger{depth: 2}
}
