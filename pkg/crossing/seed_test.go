package crossing

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLoadSeed(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(t.TempDir(), "crossings.yaml")
	seed := `crossings:
  - id: xing-1
    name: Perm-Sortirovochnaya km 12
    latitude: 58.01
    longitude: 56.25
    description: guarded crossing
  - id: xing-2
    name: Berezniki km 4
    latitude: 59.4
    longitude: 56.8
`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	require.NoError(t, LoadSeed(store, path, discard))

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 2)

	got, err := store.Get("xing-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "guarded crossing", got.Description)

	// Re-applying the same file must not duplicate crossings.
	require.NoError(t, LoadSeed(store, path, discard))
	records, err = store.List()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadSeedMissingFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, LoadSeed(store, filepath.Join(t.TempDir(), "absent.yaml"), discard))
}

func TestLoadSeedRejectsIncompleteEntry(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(t.TempDir(), "crossings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("crossings:\n  - name: no id here\n"), 0o644))

	assert.Error(t, LoadSeed(store, path, discard))
}

func TestLoadSeedRejectsMalformedYAML(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(t.TempDir(), "crossings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("crossings: [whoops"), 0o644))

	assert.Error(t, LoadSeed(store, path, discard))
}
