package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger configures the shared logger. An empty level falls back to
// LOG_LEVEL, then info.
func InitLogger(level string) *logrus.Logger {
	Logger = NewLogger(level, os.Stdout)
	return Logger
}

func NewLogger(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	logger.SetOutput(out)
	return logger
}

func GetLogger() *logrus.Logger {
	if Logger == nil {
		InitLogger("")
	}
	return Logger
}
