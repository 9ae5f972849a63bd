// Package logs writes date-stamped log files alongside the console output and
// serves the newest one back through the API.
package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const filePrefix = "profile-"

// FileHook mirrors every log entry into a file.
type FileHook struct {
	file      *os.File
	formatter logrus.Formatter
}

// Setup attaches a file hook writing into dir, one file per day. The returned
// close function flushes and releases the file.
func Setup(logger *logrus.Logger, dir string) (func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	name := filePrefix + time.Now().UTC().Format("20060102") + ".log"
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger.AddHook(&FileHook{
		file:      file,
		formatter: &logrus.TextFormatter{FullTimestamp: true, DisableColors: true},
	})
	return file.Close, nil
}

func (h *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *FileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.file.Write(line)
	return err
}

// Latest returns the contents of the newest log file in dir. Daily file names
// embed the date, so lexical order is chronological order.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), filePrefix) && strings.HasSuffix(entry.Name(), ".log") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no log file found in %s", dir)
	}
	sort.Strings(names)

	content, err := os.ReadFile(filepath.Join(dir, names[len(names)-1]))
	if err != nil {
		return "", fmt.Errorf("read log file: %w", err)
	}
	return string(content), nil
}
