// Package logging configures the structured run log. Console output stays on
// the CLI's writers; zap records the machine-readable trail of setup runs and
// resolution attempts under ~/.termbot/logs/ with size-based rotation.
package logging

import (
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "termbot.log"

// Options controls log destination and verbosity.
type Options struct {
	Dir     string // log directory; required
	Debug   bool   // lower the level to debug
	MaxSize int    // megabytes per file before rotation, defaults to 10
}

// New returns a logger writing JSON lines to Dir/termbot.log with rotation.
// Old run logs are capped so a long-lived Termux install does not fill the
// phone's storage.
func New(opts Options) *zap.Logger {
	maxSize := opts.MaxSize
	if maxSize == 0 {
		maxSize = 10
	}

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, logFileName),
		MaxSize:    maxSize,
		MaxBackups: 3,
		MaxAge:     28,
	})

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level)
	return zap.New(core)
}

// Nop returns a logger that discards everything, for tests and for commands
// that have nothing worth recording.
func Nop() *zap.Logger {
	return zap.NewNop()
}
