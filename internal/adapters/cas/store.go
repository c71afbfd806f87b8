// Package cas persists the artifact manifest of successful links.
package cas

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/zerr"
)

// Manifest is the on-disk document of a Store.
type Manifest struct {
	Artifacts []domain.ArtifactRecord `json:"artifacts"`
}

// Store implements ports.ManifestStore using flat JSON files.
// Records are keyed by platform; a new record replaces the previous one.
type Store struct {
	mu    sync.Mutex
	cache map[string]map[string]domain.ArtifactRecord // manifest path -> platform -> record
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{
		cache: make(map[string]map[string]domain.ArtifactRecord),
	}
}

// Put upserts rec into the manifest at path and rewrites the file.
func (s *Store) Put(path string, rec domain.ArtifactRecord) error {
	path = filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	records, ok := s.cache[path]
	if !ok {
		loaded, err := load(path)
		if err != nil {
			return err
		}
		records = loaded
		s.cache[path] = records
	}

	records[rec.Platform] = rec
	return save(path, records)
}

// Load reads the manifest at path. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	records, err := load(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	return &Manifest{Artifacts: sorted(records)}, nil
}

func load(path string) (map[string]domain.ArtifactRecord, error) {
	records := make(map[string]domain.ArtifactRecord)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return records, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read artifact manifest"), "path", path)
	}

	if len(data) == 0 {
		return records, nil
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal artifact manifest"), "path", path)
	}
	for _, rec := range m.Artifacts {
		records[rec.Platform] = rec
	}
	return records, nil
}

func save(path string, records map[string]domain.ArtifactRecord) error {
	data, err := json.MarshalIndent(Manifest{Artifacts: sorted(records)}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal artifact manifest")
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for artifact manifest"), "path", path)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(path, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write artifact manifest"), "path", path)
	}
	return nil
}

func sorted(records map[string]domain.ArtifactRecord) []domain.ArtifactRecord {
	out := make([]domain.ArtifactRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b domain.ArtifactRecord) int {
		return cmp.Compare(a.Platform, b.Platform)
	})
	return out
}
