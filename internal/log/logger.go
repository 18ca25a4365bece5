// Package log builds the stderr logger used by the check.
// Stdout is reserved for the single plugin status line.
package log

import (
	"io"

	"github.com/shiena/ansicolor"
	"github.com/sirupsen/logrus"
)

// New returns a logger writing to w. Only warnings and above are emitted
// unless verbose is set.
func New(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ansicolor.NewAnsiColorWriter(w))
	logger.SetLevel(levelFor(verbose))
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	return logger
}

func levelFor(verbose bool) logrus.Level {
	if verbose {
		return logrus.DebugLevel
	}
	return logrus.WarnLevel
}
