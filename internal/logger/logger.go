// Package logger holds memlab's process-wide structured logger.
//
// Records are discarded until Init enables the daily JSON file. Several memlab
// processes may append to the same file, so every record carries a "session"
// group (pid, session id, command). MemStats puts the Go runtime's own memory
// accounting next to allocation events, which is what an operator compares
// against the external monitor.
package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// L is the global logger. It discards everything until Init enables it.
var L = slog.New(slog.DiscardHandler)

const (
	logPrefix     = "memlab-"
	logSuffix     = ".log"
	dateLayout    = "2006-01-02"
	retentionDays = 30
)

// Options configures Init.
type Options struct {
	Enabled bool       // false discards all records
	LogDir  string     // default ~/.memlab/logs
	Level   slog.Level // minimum level kept
	Command string     // command path recorded in the session group
}

// Init points L at today's log file and returns its path, or "" when logging
// is disabled. Files older than retentionDays are pruned first.
func Init(opts Options) (string, error) {
	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return "", nil
	}

	dir, err := resolveDir(opts.LogDir)
	if err != nil {
		return "", err
	}

	now := time.Now()
	pruneLogs(dir, now)

	path := filepath.Join(dir, logName(now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "logger: open log file")
	}

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level})).
		With(sessionGroup(now, opts.Command))
	L.Info("session started",
		"go", runtime.Version(),
		"gomaxprocs", runtime.GOMAXPROCS(0),
		"page_size", os.Getpagesize(),
	)
	return path, nil
}

func resolveDir(dir string) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "logger: locate home directory")
		}
		dir = filepath.Join(home, ".memlab", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "logger: create %s", dir)
	}
	return dir, nil
}

// sessionGroup identifies one memlab process. The id is the start time in
// base 36 so it sorts with the file.
func sessionGroup(start time.Time, command string) slog.Attr {
	return slog.Group("session",
		"pid", os.Getpid(),
		"id", strconv.FormatInt(start.UnixMilli(), 36),
		"command", command,
	)
}

func logName(day time.Time) string {
	return logPrefix + day.Format(dateLayout) + logSuffix
}

// logDay parses the date out of a log file name, e.g. memlab-2024-01-05.log.
func logDay(name string) (time.Time, bool) {
	stem, ok := strings.CutPrefix(name, logPrefix)
	if !ok {
		return time.Time{}, false
	}
	stem, ok = strings.CutSuffix(stem, logSuffix)
	if !ok {
		return time.Time{}, false
	}
	day, err := time.Parse(dateLayout, stem)
	return day, err == nil
}

// pruneLogs removes memlab log files older than retentionDays. Best effort.
func pruneLogs(dir string, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	for _, e := range entries {
		if day, ok := logDay(e.Name()); ok && day.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, e.Name()))
		}
	}
}

// MemStats logs msg at debug level with a "runtime" group holding the heap,
// stack and OS totals from runtime.ReadMemStats. ReadMemStats stops the world,
// so nothing is read unless debug records are kept.
func MemStats(msg string, args ...any) {
	if !L.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	args = append(args, slog.Group("runtime",
		"heap_inuse", ms.HeapInuse,
		"heap_released", ms.HeapReleased,
		"stack_inuse", ms.StackInuse,
		"sys", ms.Sys,
		"num_gc", ms.NumGC,
	))
	L.Debug(msg, args...)
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
