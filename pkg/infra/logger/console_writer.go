package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors every entry to stdout so container logs stay
// readable while the file writer owns durability.
type ConsoleHook struct{}

func NewConsoleHook() *ConsoleHook {
	return &ConsoleHook{}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, string(line))
	return nil
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
