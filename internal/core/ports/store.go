package ports

import "go.trai.ch/bake/internal/core/domain"

// ManifestStore records the executables produced by successful links.
// The manifest is informational and never consulted to skip work.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Put upserts the record of rec.Platform in the manifest at path.
	Put(path string, rec domain.ArtifactRecord) error
}

// CompileDatabaseWriter writes a clang compilation database.
type CompileDatabaseWriter interface {
	// Write replaces the compilation database at path with entries.
	Write(path string, entries []domain.CompileEntry) error
}
