package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	logger, err := New(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))

	verbose, err := New(true)
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))
}

func TestProvider(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewProvider(zap.New(core))

	p.LogInfof("loaded %d games", 3)
	p.LogErrorf("failed: %s", "boom")
	p.EventsEmit("collection-loaded", []string{"a"})

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "loaded 3 games", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "failed: boom", entries[1].Message)
	assert.Equal(t, "event", entries[2].Message)
	assert.Equal(t, "collection-loaded", entries[2].ContextMap()["name"])
	assert.EqualValues(t, 1, entries[2].ContextMap()["args"])
}

func TestProvider_Nil(t *testing.T) {
	p := NewProvider(nil)
	p.LogInfof("discarded")
	p.LogErrorf("discarded")
	p.EventsEmit("discarded")
}
