package cas_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bake/internal/adapters/cas"
	"go.trai.ch/bake/internal/core/domain"
)

func record(platform string) domain.ArtifactRecord {
	return domain.ArtifactRecord{
		Platform:  platform,
		Path:      "dir/Vizkaar",
		Digest:    "0123456789abcdef",
		Size:      42,
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestStore_PutAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Binaries", "manifest.json")
	store := cas.NewStore()

	require.NoError(t, store.Put(path, record("macOS-ARM64")))
	require.NoError(t, store.Put(path, record("Linux-x64")))

	m, err := cas.Load(path)
	require.NoError(t, err)
	require.Len(t, m.Artifacts, 2)
	assert.Equal(t, "Linux-x64", m.Artifacts[0].Platform)
	assert.Equal(t, "macOS-ARM64", m.Artifacts[1].Platform)
	assert.Equal(t, record("Linux-x64"), m.Artifacts[0])
}

func TestStore_UpsertReplacesPlatform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	store := cas.NewStore()

	require.NoError(t, store.Put(path, record("Linux-x64")))
	updated := record("Linux-x64")
	updated.Digest = "fedcba9876543210"
	require.NoError(t, store.Put(path, updated))

	m, err := cas.Load(path)
	require.NoError(t, err)
	require.Len(t, m.Artifacts, 1)
	assert.Equal(t, "fedcba9876543210", m.Artifacts[0].Digest)
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")

	require.NoError(t, cas.NewStore().Put(path, record("Windows-x64")))
	require.NoError(t, cas.NewStore().Put(path, record("Linux-x64")))

	m, err := cas.Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Artifacts, 2, "a new store keeps records written by an earlier run")
}

func TestStore_ConcurrentPut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	store := cas.NewStore()

	var wg sync.WaitGroup
	for _, p := range domain.AllPlatforms() {
		wg.Go(func() {
			assert.NoError(t, store.Put(path, record(p.String())))
		})
	}
	wg.Wait()

	m, err := cas.Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Artifacts, len(domain.AllPlatforms()))
}

func TestStore_CorruptManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	err := cas.NewStore().Put(path, record("Linux-x64"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal artifact manifest")
}

func TestLoad_MissingFile(t *testing.T) {
	m, err := cas.Load(filepath.Join(t.TempDir(), "manifest.json"))
	require.NoError(t, err)
	assert.Empty(t, m.Artifacts)
}
