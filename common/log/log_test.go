package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	defer Sync()
	Info("logger smoke", String("k", "v"))
	Debug("logger smoke")
	Warn("logger smoke")
	Error("logger smoke")
	defer func() {
		if err := recover(); err != nil {
			Debug("logPanic recover")
		}
	}()
	Panic("logger smoke")
}

func TestReplaceGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := ReplaceGlobal(zap.New(core))

	Info("captured", Int64("rows", 5))
	Debug("also captured")
	assert.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "captured", entry.Message)
	assert.Equal(t, int64(5), entry.ContextMap()["rows"])

	restore()
	Info("back on the previous logger")
	assert.Equal(t, 2, logs.Len())
}
