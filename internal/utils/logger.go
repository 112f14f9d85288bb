package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// appFieldHook stamps every entry with an "app" field so lines from the
// registry can be told apart when several services share a log stream.
type appFieldHook struct {
	appName string
}

func (h *appFieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *appFieldHook) Fire(entry *logrus.Entry) error {
	entry.Data["app"] = h.appName
	return nil
}

func InitLogger(appName string) {
	Logger.SetOutput(os.Stdout)

	logLevelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", logLevelStr)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	Logger.AddHook(&appFieldHook{appName})
}
