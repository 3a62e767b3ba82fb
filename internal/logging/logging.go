// Package logging builds the zap.Logger every layer of the road-map
// core logs through, the way the teacher's pkg/di/logger does for its
// own service: level and time format read from config, with a cleanup
// func the caller flushes on shutdown.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-roadmap/roadmap-core/internal/config"
)

// New builds a zap.Logger from cfg's log settings. The returned
// cleanup func flushes buffered log entries and should be deferred by
// the caller.
func New(cfg config.LogConfig) (*zap.Logger, func(), error) {
	level := zapcore.Level(cfg.Level)
	if err := validateLevel(level); err != nil {
		return nil, nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = logger.Sync()
	}

	return logger, cleanup, nil
}

func validateLevel(level zapcore.Level) error {
	if level < zapcore.DebugLevel || level > zapcore.FatalLevel {
		return fmt.Errorf("logging: level %d out of range", level)
	}
	return nil
}
