package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field aliases so callers do not need to import zap directly.
var (
	String = zap.String
	Int    = zap.Int
	Int32  = zap.Int32
	Int64  = zap.Int64
	Bool   = zap.Bool
	Any    = zap.Any
)

type Field = zap.Field

var global *zap.Logger

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger, err := cfg.Build(AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	global = logger
}

// ReplaceGlobal swaps the package logger, returning a func restoring the
// previous one.
func ReplaceGlobal(logger *zap.Logger) func() {
	prev := global
	global = logger
	return func() { global = prev }
}

func L() *zap.Logger {
	return global
}

func Debug(msg string, fields ...Field) {
	global.Debug(msg, fields...)
}

func Info(msg string, fields ...Field) {
	global.Info(msg, fields...)
}

func Warn(msg string, fields ...Field) {
	global.Warn(msg, fields...)
}

func Error(msg string, fields ...Field) {
	global.Error(msg, fields...)
}

func Panic(msg string, fields ...Field) {
	global.Panic(msg, fields...)
}

func Sync() error {
	return global.Sync()
}
