package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func Init(level, format string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if format == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	Log.SetOutput(os.Stdout)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return ensure().WithFields(fields)
}

func Info(args ...interface{}) {
	ensure().Info(args...)
}

func Error(args ...interface{}) {
	ensure().Error(args...)
}

func Warn(args ...interface{}) {
	ensure().Warn(args...)
}

func Debug(args ...interface{}) {
	ensure().Debug(args...)
}

func Fatal(args ...interface{}) {
	ensure().Fatal(args...)
}

func ensure() *logrus.Logger {
	if Log == nil {
		Init("info", "text")
	}
	return Log
}
