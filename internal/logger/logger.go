// Package logger provides the process-wide zap logger used by the CLI.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.Mutex
	log *zap.SugaredLogger
)

// Init configures the global logger. Verbose enables debug output.
func Init(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	log = build(verbose)
}

// Logger returns the global logger, initializing a default one if Init has
// not been called.
func Logger() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = build(false)
	}
	return log
}

func build(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		// The development config only fails on invalid user options, of
		// which there are none here.
		panic(err)
	}
	return l.Sugar()
}
