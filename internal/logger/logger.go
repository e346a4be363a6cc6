// Package logger configures the process-wide logrus logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup applies formatter and level to the standard logrus logger: text with
// full timestamps in development, JSON in production. An unknown level falls
// back to info and is reported.
func Setup(level string, isProd bool) {
	logrus.SetOutput(os.Stdout)
	if isProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.WithField("level", level).Warn("unknown log level, using info")
		return
	}
	logrus.SetLevel(lvl)
}
