package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Production gets JSON logs at info level,
// dev gets human-readable text at debug level.
func New(output io.Writer, prod bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)
	if prod {
		l.SetFormatter(new(logrus.JSONFormatter))
		l.SetLevel(logrus.InfoLevel)
		return l
	}
	l.SetFormatter(new(logrus.TextFormatter))
	l.SetLevel(logrus.DebugLevel)
	return l
}
