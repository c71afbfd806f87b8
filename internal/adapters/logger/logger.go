package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/bake/internal/core/ports"
)

// messager is implemented by errors that can report their own message without the chain.
type messager interface {
	Message() string
}

// metadataer is implemented by errors carrying key/value metadata.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	level    *slog.LevelVar
	jsonMode bool
	output   io.Writer
}

// New creates a Logger writing pretty output to stderr.
func New() *Logger {
	l := &Logger{level: &slog.LevelVar{}, output: os.Stderr}
	l.level.Set(slog.LevelInfo)
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetDebug enables debug records.
func (l *Logger) SetDebug(enable bool) {
	if enable {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// rebuild must be called with mu held.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = NewPrettyHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// Debug logs a diagnostic message, shown only when debug output is enabled.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its cause chain and metadata.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := collectErrorEntries(err)

	if l.jsonMode {
		args := []any{"error", err.Error()}
		for _, e := range entries {
			for _, kv := range e.metadata {
				args = append(args, kv.key, kv.value)
			}
		}
		l.logger.Error("operation failed", args...)
		return
	}

	l.logger.Error(formatErrorEntries(entries))
}

type metaPair struct {
	key   string
	value any
}

type errorEntry struct {
	message  string
	metadata []metaPair
}

// collectErrorEntries walks the error chain, splitting it into one entry per zerr layer.
// A standard error ends the walk with its full message.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error()})
			break
		}

		entry := errorEntry{message: m.Message()}
		if md, ok := current.(metadataer); ok {
			meta := md.Metadata()
			keys := make([]string, 0, len(meta))
			for k := range meta {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				entry.metadata = append(entry.metadata, metaPair{key: k, value: meta[k]})
			}
		}
		// Layers created by zerr.With on a plain error have no message of their own.
		if entry.message != "" || len(entry.metadata) > 0 {
			entries = append(entries, entry)
		}
		current = errors.Unwrap(current)
	}
	return mergeEmptyEntries(entries)
}

// mergeEmptyEntries folds metadata-only entries into the entry that follows them.
func mergeEmptyEntries(entries []errorEntry) []errorEntry {
	out := make([]errorEntry, 0, len(entries))
	var carry []metaPair
	for _, e := range entries {
		if e.message == "" {
			carry = append(carry, e.metadata...)
			continue
		}
		e.metadata = append(carry, e.metadata...)
		carry = nil
		out = append(out, e)
	}
	if len(carry) > 0 && len(out) > 0 {
		last := &out[len(out)-1]
		last.metadata = append(last.metadata, carry...)
	}
	return out
}

// formatErrorEntries renders entries as a main error followed by its causes.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string
	for i, e := range entries {
		msgLines := strings.Split(e.message, "\n")
		head := msgLines[0] + formatMetadata(e.metadata)

		if i == 0 {
			lines = append(lines, "Error: "+head)
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+head)
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}
	return strings.Join(lines, "\n")
}

func formatMetadata(meta []metaPair) string {
	if len(meta) == 0 {
		return ""
	}
	parts := make([]string, 0, len(meta))
	for _, kv := range meta {
		parts = append(parts, fmt.Sprintf("%s=%v", kv.key, kv.value))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

var _ ports.Logger = (*Logger)(nil)
