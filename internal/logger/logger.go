// Package logger provides the process-wide logger used by every package.
// Messages are either printf-style ("loaded %d books", n) or a message
// followed by alternating key/value pairs ("book created", "id", id).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Field represents a structured logging field
type Field struct {
	Key   string
	Value interface{}
}

var (
	mu   sync.RWMutex
	root hclog.Logger = newRoot(os.Stderr, "info", os.Getenv("LOG_FORMAT") == "json")
)

func newRoot(out io.Writer, level string, jsonFormat bool) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "watchlist",
		Level:      hclog.LevelFromString(level),
		Output:     out,
		JSONFormat: jsonFormat,
	})
}

// Configure replaces the root logger. Format is "json" or "text".
func Configure(level, format string) {
	ConfigureOutput(os.Stderr, level, format)
}

// ConfigureOutput is Configure with an explicit sink.
func ConfigureOutput(out io.Writer, level, format string) {
	if level == "" {
		level = "info"
	}
	mu.Lock()
	root = newRoot(out, level, strings.EqualFold(format, "json"))
	mu.Unlock()
}

// SetLevel changes the level of the root logger in place
func SetLevel(level string) {
	mu.RLock()
	defer mu.RUnlock()
	root.SetLevel(hclog.LevelFromString(level))
}

// Logger returns the underlying hclog logger
func Logger() hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Named returns a sub-logger for a component
func Named(name string) hclog.Logger {
	return Logger().Named(name)
}

// Info logs informational messages
func Info(msg string, args ...interface{}) {
	emit(hclog.Info, msg, args)
}

// Warn logs warning messages
func Warn(msg string, args ...interface{}) {
	emit(hclog.Warn, msg, args)
}

// Error logs error messages
func Error(msg string, args ...interface{}) {
	emit(hclog.Error, msg, args)
}

// Debug logs debug messages
func Debug(msg string, args ...interface{}) {
	emit(hclog.Debug, msg, args)
}

func emit(level hclog.Level, msg string, args []interface{}) {
	l := Logger()
	if l.GetLevel() > level {
		return
	}
	msg, kv := split(msg, args)
	l.Log(level, msg, kv...)
}

// split decides between printf formatting and key/value pairs. A trailing
// []Field is always treated as structured context.
func split(msg string, args []interface{}) (string, []interface{}) {
	var kv []interface{}
	if n := len(args); n > 0 {
		if fields, ok := args[n-1].([]Field); ok {
			args = args[:n-1]
			for _, f := range fields {
				kv = append(kv, f.Key, f.Value)
			}
		}
	}
	if len(args) == 0 {
		return msg, kv
	}
	if strings.Contains(msg, "%") {
		return fmt.Sprintf(msg, args...), kv
	}
	if len(args)%2 != 0 {
		args = append(args, "<missing>")
	}
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		kv = append(kv, key, normalize(args[i+1]))
	}
	return msg, kv
}

func normalize(v interface{}) interface{} {
	if err, ok := v.(error); ok && err != nil {
		return err.Error()
	}
	return v
}

// Helper functions for common field types
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Err(key string, err error) Field {
	if err == nil {
		return Field{Key: key, Value: nil}
	}
	return Field{Key: key, Value: err.Error()}
}
