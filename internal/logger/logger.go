package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	Logger.SetLevel(logrus.InfoLevel)

	// Override from env, e.g., HIREDESK_LOG_LEVEL=debug
	if level := os.Getenv("HIREDESK_LOG_LEVEL"); level != "" {
		if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
			Logger.SetLevel(parsed)
		}
	}
}

// SetLevel applies a level name from configuration; unknown names keep the
// current level.
func SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	Logger.SetLevel(parsed)
	return nil
}

// WithComponent adds a component field to the logger
func WithComponent(component string) *logrus.Entry {
	return Logger.WithField("component", component)
}
