package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestObservedLogger(t *testing.T) {
	log, logs := NewObservedLogger(zapcore.InfoLevel)

	scoped := log.WithFields(map[string]interface{}{"taskType": "calculate-proposal"})
	scoped.Debug("dropped", nil)
	scoped.Warn("unknown services ignored", map[string]interface{}{
		"unknown": []string{"x"},
		"cause":   errors.New("boom"),
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unknown services ignored", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "calculate-proposal", ctx["taskType"])
	assert.Equal(t, "boom", ctx["cause"])
}

func TestWithError(t *testing.T) {
	log, logs := NewObservedLogger(zapcore.DebugLevel)

	log.WithError(errors.New("disk full")).Error("export failed", nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "disk full", logs.All()[0].ContextMap()["error"])
}

func TestNewStructured(t *testing.T) {
	log := NewStructured("info", "json", "stderr")
	assert.NotNil(t, log)
	log.Info("ready", map[string]interface{}{"port": 8080})
	NewNoOpLogger().Info("nothing", nil)
}
