// Package logger is the process-wide structured logger. Call sites pass a
// message followed by alternating key/value pairs; an error value anywhere in
// the list is attached as the "error" field.
//
//	logger.Info("Server starting", "address", addr)
//	logger.Error("Failed to load ratings", err)
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	setup(os.Stderr, "production")
}

// Init configures the global logger for the given environment. Development
// gets a human readable console writer at debug level, everything else JSON
// at info level.
func Init(environment string) {
	setup(os.Stderr, environment)
}

func setup(w io.Writer, environment string) {
	mu.Lock()
	defer mu.Unlock()

	level := zerolog.InfoLevel
	out := w
	if environment == "development" || environment == "local" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	log = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &log
}

func Debug(msg string, args ...any) {
	withFields(get().Debug(), args).Msg(msg)
}

func Info(msg string, args ...any) {
	withFields(get().Info(), args).Msg(msg)
}

func Warn(msg string, args ...any) {
	withFields(get().Warn(), args).Msg(msg)
}

func Error(msg string, args ...any) {
	withFields(get().Error(), args).Msg(msg)
}

// Fatal logs and exits the process with status 1.
func Fatal(msg string, args ...any) {
	withFields(get().Fatal(), args).Msg(msg)
}

func withFields(e *zerolog.Event, args []any) *zerolog.Event {
	if e == nil {
		return nil
	}

	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			e = e.Err(v)
		case string:
			if i+1 < len(args) {
				e = e.Interface(v, args[i+1])
				i++
				continue
			}
			e = e.Str("detail", v)
		default:
			e = e.Interface(fmt.Sprintf("arg%d", i), v)
		}
	}

	return e
}
