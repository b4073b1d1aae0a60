package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger. Format is "json" or "text";
// w defaults to os.Stderr so stdout stays free for reports.
func Init(level logrus.Level, format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	switch strings.ToLower(format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	logrus.SetOutput(w)
	logrus.SetLevel(level)
}

// ParseLevel is logrus.ParseLevel with an info fallback.
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// New returns an entry tagged with a component name.
func New(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}

// Discard returns an entry that writes nowhere. Library packages use it
// when the caller supplies no logger.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
