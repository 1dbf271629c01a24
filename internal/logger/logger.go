// Package logger builds the application's zap logger: a rotated JSON file
// plus an optional console stream.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// File is the log file path. Empty disables the file core.
	File string
	// Verbose lowers the level to debug.
	Verbose bool
	// Console mirrors log lines to Stderr. Keep it off while a full-screen
	// TUI owns the terminal.
	Console bool
	// Stderr overrides os.Stderr for the console core.
	Stderr io.Writer
}

// New creates a logger from opts. With neither a file nor a console it
// returns a no-op logger.
func New(opts Options) *zap.Logger {
	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	var cores []zapcore.Core

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "timestamp"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc.MessageKey = "message"
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(rotator), level))
	}

	if opts.Console {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		// Console only shows warnings unless verbose.
		consoleLevel := zap.WarnLevel
		if opts.Verbose {
			consoleLevel = zap.DebugLevel
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), consoleLevel))
	}

	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
