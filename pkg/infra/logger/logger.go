package logger

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultLogFile = "logs/thesisgate.log"

// NewLogger builds the process-wide logger: JSON lines through the
// async file writer, mirrored to stdout by the console hook. LOG_LEVEL
// and LOG_FILE override the defaults.
func NewLogger() *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})

	logger.SetLevel(levelFromEnv())
	logger.SetOutput(newFileSink())
	logger.AddHook(NewConsoleHook())

	return logger
}

func levelFromEnv() logrus.Level {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		log.Printf("unknown LOG_LEVEL %q, falling back to info", raw)
		return logrus.InfoLevel
	}
	return level
}

func newFileSink() *AsyncFileWriter {
	path := os.Getenv("LOG_FILE")
	if path == "" {
		path = defaultLogFile
	}

	path = filepath.Clean(path)
	if strings.Contains(path, "..") {
		log.Fatalf("invalid LOG_FILE %q: path must stay below the working directory", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	sink, err := NewAsyncFileWriter(path, 32*1024)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	return sink
}
