// Package logger builds the leveled logger shared by both endpoints.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger for one endpoint. The debug flag gates the
// per-transfer trace messages; fatal messages are always emitted.
func New(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
