package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level = logrus.Level

const (
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

func init() {
	// Filtering happens per module, so the backend must let everything through.
	logrus.SetLevel(logrus.DebugLevel)
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// Disable silences every module, including warnings and errors. Used by the
// concurrent check runner, where interleaved lines would be unreadable.
func Disable() {
	logrus.SetOutput(io.Discard)
}
