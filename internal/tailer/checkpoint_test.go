package tailer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state", "offsets.json")

	cm := NewCheckpointManager(path, time.Minute, nil)
	cm.Update("/var/log/app.log", 1234)
	cm.Update("/var/log/other.log", 9)
	cm.Save()

	loaded := NewCheckpointManager(path, time.Minute, nil)
	loaded.Load()

	off, ok := loaded.Offset("/var/log/app.log")
	require.True(t, ok)
	assert.Equal(t, int64(1234), off)

	off, ok = loaded.Offset("/var/log/other.log")
	require.True(t, ok)
	assert.Equal(t, int64(9), off)
}

func TestCheckpointLoadMissingFile(t *testing.T) {
	cm := NewCheckpointManager(filepath.Join(t.TempDir(), "offsets.json"), time.Minute, nil)
	cm.Load()

	_, ok := cm.Offset("/var/log/app.log")
	assert.False(t, ok)
}

func TestCheckpointLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offsets.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	cm := NewCheckpointManager(path, time.Minute, nil)
	cm.Load()

	_, ok := cm.Offset("/var/log/app.log")
	assert.False(t, ok)
}

func TestCheckpointForget(t *testing.T) {
	cm := NewCheckpointManager(filepath.Join(t.TempDir(), "offsets.json"), time.Minute, nil)
	cm.Update("/a", 1)
	cm.Forget("/a")

	_, ok := cm.Offset("/a")
	assert.False(t, ok)
}

func TestCheckpointStopSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offsets.json")

	cm := NewCheckpointManager(path, time.Hour, nil)
	cm.Start()
	cm.Update("/var/log/app.log", 77)
	cm.Stop()
	// Stop is idempotent.
	cm.Stop()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var offsets map[string]int64
	require.NoError(t, json.Unmarshal(data, &offsets))
	assert.Equal(t, int64(77), offsets["/var/log/app.log"])
}

func TestCheckpointDefaultInterval(t *testing.T) {
	cm := NewCheckpointManager(filepath.Join(t.TempDir(), "offsets.json"), 0, nil)
	assert.Equal(t, defaultCheckpointInterval, cm.interval)
}
