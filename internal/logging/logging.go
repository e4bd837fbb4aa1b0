// Package logging builds the zap logger used for diagnostics. Record output
// never goes through it.
package logging

import (
	"io"
	"os"

	"github.com/pingcap/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level string

	// File, when set, sends logs to a size-rotated file instead of stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int

	// Writer overrides the destination. Used by tests.
	Writer io.Writer
}

// New returns a console-encoded logger for opts.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if opts.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, errors.Annotate(err, "log level")
		}
	}

	var sink zapcore.WriteSyncer
	switch {
	case opts.Writer != nil:
		sink = zapcore.AddSync(opts.Writer)
	case opts.File != "":
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		})
	default:
		sink = zapcore.Lock(os.Stderr)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), sink, level)
	return zap.New(core), nil
}
