package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ledgerbook/internal/config"
	"ledgerbook/internal/logger"
)

func TestNew_ParsesLevel(t *testing.T) {
	l, err := logger.New(config.LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, err := logger.New(config.LogConfig{Level: "loud", Format: "console"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestFromContext(t *testing.T) {
	l := zap.NewNop().With(zap.String("request_id", "abc"))
	ctx := logger.WithContext(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
	assert.NotNil(t, logger.FromContext(context.Background()))
}
