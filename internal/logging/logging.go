// Package logging holds the logger shared by the command line tool.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger writes human readable messages to stderr so stdout stays reserved
// for the evaluated version.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	return l
}

// LevelFromVerbosity maps the number of -v flags to a level.
func LevelFromVerbosity(count int) logrus.Level {
	switch {
	case count <= 0:
		return logrus.WarnLevel
	case count == 1:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// Configure sets the level of Logger. A non-empty name wins over verbosity.
func Configure(name string, verbosity int) error {
	level := LevelFromVerbosity(verbosity)
	if name != "" {
		parsed, err := logrus.ParseLevel(name)
		if err != nil {
			return err
		}
		level = parsed
	}
	Logger.SetLevel(level)
	return nil
}
