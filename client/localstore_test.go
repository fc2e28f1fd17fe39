package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taskpalette/services/task"
)

func TestLocalStoreInstallsSamplesOnFirstLoad(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	tasks, err := store.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 7)

	// The install is persisted, not recomputed per load.
	_, err = os.Stat(store.path)
	require.NoError(t, err)
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	want := []task.Task{
		{ID: "a", Title: "A", TriggerType: task.Manual, Inputs: []task.Input{}, Files: []task.File{}, Apps: []string{"gmail"}},
		{ID: "b", Title: "B", TriggerType: task.Automatic, Inputs: []task.Input{}, Files: []task.File{}, Apps: []string{}},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLocalStoreCorruptFileFallsBackToSamples(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, storeKey+".json"), []byte("{broken"), 0o644))

	tasks, err := store.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 7)
}

func TestCachePrimedFromLocalStore(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	// Unreachable server: the cache still has the mirrored data.
	cache := NewCache(NewTasksAPI("http://127.0.0.1:1"), WithLocalStore(store))
	require.Len(t, cache.Tasks(), 7)
}
