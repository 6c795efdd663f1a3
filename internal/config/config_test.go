package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livp123/loglens/internal/classify"
	"github.com/livp123/loglens/internal/tailer"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, classify.DefaultColors(), cfg.Colors)
	assert.False(t, cfg.AutoTail)
	assert.Equal(t, tailer.PositionEnd, cfg.Tail.Position)
	assert.False(t, cfg.Tail.Checkpoint.Enabled)
	assert.Equal(t, 2*time.Second, cfg.CheckpointInterval())
	assert.Equal(t, ":9321", cfg.Metrics.Listen)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
colors:
  error: "#ff0000"
  warn: "#ffaa00"
auto_tail: true
tail:
  files:
    - /var/log/app.log
  position: resume
  checkpoint:
    enabled: true
    path: /tmp/offsets.json
    interval: 5s
filter: 'Primary == "ERROR"'
metrics:
  enabled: true
  listen: ":9999"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "#ff0000", cfg.Colors.Error)
	assert.Equal(t, "#ffaa00", cfg.Colors.Warn)
	// Unset colors keep their defaults.
	assert.Equal(t, classify.DefaultColors().Info, cfg.Colors.Info)
	assert.True(t, cfg.AutoTail)
	assert.Equal(t, []string{"/var/log/app.log"}, cfg.Tail.Files)
	assert.Equal(t, tailer.PositionResume, cfg.Tail.Position)
	assert.True(t, cfg.Tail.Checkpoint.Enabled)
	assert.Equal(t, 5*time.Second, cfg.CheckpointInterval())
	assert.Equal(t, `Primary == "ERROR"`, cfg.Filter)
	assert.Equal(t, ":9999", cfg.Metrics.Listen)
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
tail:
  position: sideways
  checkpoint:
    interval: not-a-duration
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Recovered locally, never surfaced as failure.
	assert.Equal(t, tailer.PositionEnd, cfg.Tail.Position)
	assert.Equal(t, "2s", cfg.Tail.Checkpoint.Interval)
}

func TestLoadUnparsableFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.AutoTail = true
	cfg.Tail.Files = []string{"/var/log/kern.log"}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_tail: true\n"), 0644))

	m := NewManager(path)
	assert.Equal(t, path, m.Path())

	// Before Load, Get returns defaults.
	assert.False(t, m.Get().AutoTail)

	require.NoError(t, m.Load())
	assert.True(t, m.Get().AutoTail)

	// Get returns a copy; mutation does not leak back.
	got := m.Get()
	got.AutoTail = false
	assert.True(t, m.Get().AutoTail)

	require.NoError(t, os.WriteFile(path, []byte("auto_tail: false\n"), 0644))
	require.NoError(t, m.Reload())
	assert.False(t, m.Get().AutoTail)

	m.Update(&Config{AutoTail: true})
	assert.True(t, m.Get().AutoTail)
}
