// Package compdb writes clang compilation databases for editor tooling.
package compdb

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/zerr"
)

// Writer implements ports.CompileDatabaseWriter.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write replaces the compilation database at path with entries.
// An empty entry list still produces a valid, empty database.
func (w *Writer) Write(path string, entries []domain.CompileEntry) error {
	if entries == nil {
		entries = []domain.CompileEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal compile database")
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for compile database"), "path", path)
	}

	//nolint:gosec // Path is provided by trusted caller
	if err := os.WriteFile(path, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write compile database"), "path", path)
	}
	return nil
}
