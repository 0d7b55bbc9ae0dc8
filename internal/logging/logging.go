// Package logging provides structured, leveled logging for the Airweave core.
//
// It wraps go.uber.org/zap the way the original CLI wrapped a bare stderr
// writer: call sites get a small, opinionated facade instead of the raw
// library. Unlike the CLI's verbose-only logger, production syncs run
// unattended, so this package always logs (at Info and above) and only
// gates Debug output behind verbosity.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	base   *zap.Logger
	fields = zap.Fields()
)

func init() {
	base = newLogger(false)
}

func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.EncoderConfig.TimeKey = "ts"
	l, err := cfg.Build()
	if err != nil {
		// Build() only fails on a malformed config; fall back to a no-op
		// logger rather than panicking a production orchestrator.
		return zap.NewNop()
	}
	return l
}

// SetDebug toggles debug-level logging globally. Mirrors the CLI's
// SetVerbose, but the base logger keeps emitting Info/Warn/Error regardless.
func SetDebug(v bool) {
	mu.Lock()
	defer mu.Unlock()
	base = newLogger(v)
}

// Root returns the process-wide base logger.
func Root() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Component returns a sugared logger scoped to a named component, e.g.
// logging.Component("sync-orchestrator"). Mirrors jordigilh-kubernaut's
// fields-builder idiom (component/operation/resource) but through zap's
// structured With() rather than a map.
func Component(name string) *zap.SugaredLogger {
	return Root().Sugar().With("component", name)
}

// WithFields attaches standard structured fields the way
// jordigilh-kubernaut's logging.Fields builder does, returning a logger
// call sites can keep chaining.
func WithFields(l *zap.SugaredLogger, kv ...any) *zap.SugaredLogger {
	return l.With(kv...)
}
