package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	l, err := Init(Options{Level: "warn", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	assert.Same(t, l, L())
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = Init(Options{Level: "verbose"})
	assert.Error(t, err)
}

func TestCtxAddsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ReplaceGlobal(zap.New(core))
	t.Cleanup(func() { ReplaceGlobal(zap.NewNop()) })

	ctx := WithRequestID(context.Background(), "req-1")
	Ctx(ctx).Info("hello")
	Ctx(context.Background()).Info("bare")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
}
