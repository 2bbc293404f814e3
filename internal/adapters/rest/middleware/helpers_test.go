package middleware

import (
	"context"
	"fmt"
	"sync"
)

type logRecord struct {
	level string
	msg   string
	args  map[string]any
}

type recordingLogger struct {
	mu      sync.Mutex
	records []logRecord
}

func (l *recordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fields := map[string]any{}
	for i := 0; i+1 < len(args); i += 2 {
		fields[fmt.Sprint(args[i])] = args[i+1]
	}
	l.records = append(l.records, logRecord{level: level, msg: msg, args: fields})
}

func (l *recordingLogger) Debug(ctx context.Context, msg string, args ...any) { l.add("debug", msg, args) }
func (l *recordingLogger) Info(ctx context.Context, msg string, args ...any)  { l.add("info", msg, args) }
func (l *recordingLogger) Warn(ctx context.Context, msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recordingLogger) Error(ctx context.Context, msg string, args ...any) { l.add("error", msg, args) }

func (l *recordingLogger) byLevel(level string) []logRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logRecord
	for _, r := range l.records {
		if r.level == level {
			out = append(out, r)
		}
	}
	return out
}
