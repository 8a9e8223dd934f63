// Package logger builds the zap loggers used by the jobready CLI.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr. json switches the encoding and
// debug lowers the level so persistence writes become visible.
func New(json bool, debug bool) (*zap.Logger, error) {
	cfg := zap.Config{
		Encoding:         encodingFor(json),
		Level:            zap.NewAtomicLevelAt(levelFor(debug)),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig(),
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// NewWriter builds the same logger as New but writes to w.
func NewWriter(w io.Writer, json bool, debug bool) *zap.Logger {
	var enc zapcore.Encoder
	if json {
		enc = zapcore.NewJSONEncoder(encoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(encoderConfig())
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), levelFor(debug))
	return zap.New(core)
}

func encodingFor(json bool) string {
	if json {
		return "json"
	}
	return "console"
}

func levelFor(debug bool) zapcore.Level {
	if debug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.RFC3339TimeEncoder,

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
}
