package common

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger: console output at debug level when
// debug is set, sampled JSON at info level otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	level := zap.InfoLevel
	encoding := "json"
	encoder := zap.NewProductionEncoderConfig()
	if debug {
		level = zap.DebugLevel
		encoding = "console"
		encoder = zap.NewDevelopmentEncoderConfig()
		encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: debug,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding,
		EncoderConfig:    encoder,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}
