// Package actionlog appends dashboard audit entries to a plain text file.
package actionlog

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FileLogger writes one line per action: "<timestamp> - <actor> <message>".
// The file is opened per entry in append mode; a mutex keeps concurrent
// entries from interleaving within the process.
type FileLogger struct {
	path   string
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex
}

func NewFileLogger(path string, logger *zap.Logger) *FileLogger {
	return &FileLogger{path: path, logger: logger, now: time.Now}
}

func (l *FileLogger) Log(ctx context.Context, actor, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		// The audit trail must never take an operation down with it.
		l.logger.Error("Failed to open action log", zap.String("path", l.path), zap.Error(err))
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s - %s %s\n", l.now().Format(time.RFC3339), actor, message)
	if _, err := f.WriteString(line); err != nil {
		l.logger.Error("Failed to append action log entry", zap.String("path", l.path), zap.Error(err))
	}
}
