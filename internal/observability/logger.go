// Package observability constructs the process logger. The logger is built
// once at startup and injected everywhere; nothing mutates global logging
// state afterwards.
package observability

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/upb/retrieval-gateway/config"
	"github.com/upb/retrieval-gateway/internal/safelog"
)

// NewLogger builds the structured logger. Every record flows through the
// safe-log scrubbing core before it reaches the sink.
func NewLogger(cfg config.ObservabilityConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.LogFormat == "text" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	return zap.New(safelog.NewCore(core)), nil
}
