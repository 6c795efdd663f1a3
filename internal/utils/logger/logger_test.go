package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init(Config{Enabled: false, Level: "info"})

	log := Get(nil)
	assert.NotNil(t, log)

	// Sync may return an error on stderr, which is expected.
	_ = Sync()
}

func TestInitFileOutput(t *testing.T) {
	path := t.TempDir() + "/loglens.log"
	Init(Config{Enabled: true, Level: "debug", Path: path, MaxSize: 1})

	log := Get(nil)
	log.Infof("hello from test")
	assert.NoError(t, Sync())

	assert.FileExists(t, path)
}

func TestGet(t *testing.T) {
	assert.NotNil(t, Get(nil))
	assert.NotNil(t, Get(context.Background()))
}

func TestWithContext(t *testing.T) {
	Init(Config{Enabled: false, Level: "info"})

	log := Get(nil)
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, Get(ctx))
}
