package logger

import (
	"strings"
	"sync"
)

// Levels accepted by config.yml's log_level key.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	shared *Logger
	once   sync.Once
)

// Get returns the process-wide logger. The first caller fixes the level
// (normalized, so "INFO" and " info " both work); later calls return the
// same instance and ignore their argument.
func Get(level string) *Logger {
	once.Do(func() {
		shared = newZapLogger(strings.ToLower(strings.TrimSpace(level)))
	})
	return shared
}
