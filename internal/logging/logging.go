// Package logging provides category-based file logging for skilldash.
// The interactive dashboard owns the terminal, so nothing may write to
// stdout/stderr while it is running; log lines go to .skilldash/logs/
// instead, one file per category per day. When debug mode is off the whole
// package is a no-op.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category names a log stream.
type Category string

const (
	CategoryBoot    Category = "boot"    // startup, config, dataset load
	CategoryData    Category = "data"    // dataset validation, reloads
	CategoryUI      Category = "ui"      // selection, render passes
	CategoryRefresh Category = "refresh" // market-data refresh pipeline
	CategoryExport  Category = "export"  // snapshot export, clipboard
)

var (
	mu      sync.Mutex
	loggers = make(map[Category]*Logger)
	logsDir string
	enabled bool
)

// Logger writes to one category file. The zero Logger is a no-op.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

// Initialize sets the logs directory under the workspace dotdir. With
// debug false this is a silent no-op and every Get returns a no-op logger.
func Initialize(workspace string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	enabled = debug
	if !debug {
		return nil
	}
	logsDir = filepath.Join(workspace, ".skilldash", "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}
	return nil
}

// Get returns (or creates) the logger for a category.
func Get(category Category) *Logger {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logsDir == "" {
		return &Logger{category: category}
	}
	if l, ok := loggers[category]; ok {
		return l
	}

	name := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), category)
	file, err := os.OpenFile(filepath.Join(logsDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		// Fall back to a no-op logger rather than fighting the TUI for
		// the terminal.
		return &Logger{category: category}
	}
	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

// CloseAll closes every open log file. Call at shutdown.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

func (l *Logger) printf(level, format string, args ...interface{}) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...interface{}) { l.printf("DEBUG", format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.printf("INFO", format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.printf("WARN", format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.printf("ERROR", format, args...) }

// Convenience helpers, no-ops when debug mode is off.

func Boot(format string, args ...interface{})    { Get(CategoryBoot).Info(format, args...) }
func Data(format string, args ...interface{})    { Get(CategoryData).Info(format, args...) }
func UI(format string, args ...interface{})      { Get(CategoryUI).Info(format, args...) }
func Refresh(format string, args ...interface{}) { Get(CategoryRefresh).Info(format, args...) }
func Export(format string, args ...interface{})  { Get(CategoryExport).Info(format, args...) }

func DataError(format string, args ...interface{})   { Get(CategoryData).Error(format, args...) }
func UIDebug(format string, args ...interface{})     { Get(CategoryUI).Debug(format, args...) }
func ExportError(format string, args ...interface{}) { Get(CategoryExport).Error(format, args...) }
