package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = logrus.New()

// LogConfig selects level, format and destination of the shared logger.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// ConfigureLogger applies cfg to the shared logger. An empty File logs to
// stdout; otherwise output goes to a rotated file.
func ConfigureLogger(cfg LogConfig) error {
	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return err
		}
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
	}
	logger.SetOutput(out)
	return nil
}

// Logger exposes the shared logger for callers that need raw entries.
func Logger() *logrus.Logger {
	return logger
}

// LogEvent writes one structured line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	eventEntry(requestID, module, action).Info(message)
}

// LogFailure is LogEvent at warning level with the error attached.
func LogFailure(requestID, module, action string, err error) {
	eventEntry(requestID, module, action).WithError(err).Warn("operation failed")
}

func eventEntry(requestID, module, action string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"module":     strings.ToLower(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	})
}
