package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	return log
}

// ConfigureLogger switches the logger to JSON in production, using the field
// names log collectors expect. Other environments keep text output at debug.
func ConfigureLogger(log *logrus.Logger, env string) {
	if env != "production" {
		log.Level = logrus.DebugLevel
		return
	}

	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Level = logrus.InfoLevel
}
