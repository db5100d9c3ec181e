package log

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a stdout logger. Unknown levels fall back to info,
// format is "TEXT" or "JSON".
func NewLogger(level, format string, disableTimestamp bool) *logrus.Logger {
	return newLogger(os.Stdout, level, format, disableTimestamp)
}

func newLogger(out io.Writer, level, format string, disableTimestamp bool) *logrus.Logger {
	log := logrus.New()
	log.Out = out

	switch strings.ToUpper(format) {
	case "JSON":
		log.Formatter = &logrus.JSONFormatter{DisableTimestamp: disableTimestamp}
	default:
		log.Formatter = &logrus.TextFormatter{DisableTimestamp: disableTimestamp, FullTimestamp: true}
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.Level = lvl
	return log
}
