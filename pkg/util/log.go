package util

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the shared logger. Validation output goes to stdout via the
// report writers; the logger carries progress and diagnostics on stderr.
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetLogLevel sets the logging level from its string name.
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}

// SetLogOutput redirects log output.
func SetLogOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// SetJSONFormat switches to JSON log lines for machine consumption.
func SetJSONFormat() {
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
}

// WithField returns an entry scoped to one field.
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}

// WithFields returns an entry scoped to multiple fields.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return Logger.WithFields(fields)
}

// WithDevice returns an entry scoped to a device.
func WithDevice(device string) *logrus.Entry {
	return Logger.WithField("device", device)
}

// WithValidator returns an entry scoped to a validator.
func WithValidator(validator string) *logrus.Entry {
	return Logger.WithField("validator", validator)
}
