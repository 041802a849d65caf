// Package auditlog appends operation records to a markdown trail file.
package auditlog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

const entryTemplate = `
**时间**：%s

**问题描述**：%s

**目的**：%s

---
`

// Logger writes timestamped entries to an append-only markdown file.
// Write failures are reported to the service log only; they must never fail
// the request that triggered them.
type Logger struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
	now  func() time.Time
}

func New(path string, logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{path: path, log: logger, now: time.Now}
}

// Record appends one entry describing the operation and its purpose.
func (l *Logger) Record(event, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.log.Warn("audit log open failed", zap.String("path", l.path), zap.Error(err))
		return
	}
	defer f.Close()

	entry := fmt.Sprintf(entryTemplate, l.now().Format("2006-01-02 15:04:05"), event, detail)
	if _, err := f.WriteString(entry); err != nil {
		l.log.Warn("audit log write failed", zap.String("path", l.path), zap.Error(err))
	}
}
