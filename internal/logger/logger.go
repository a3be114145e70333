package logger

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface the pipeline components depend on. The
// *Obj variants attach an event tag and structured fields to the line.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	DebugObj(msg, event string, fields map[string]any)
	InfoObj(msg, event string, fields map[string]any)
	WarnObj(msg, event string, fields map[string]any)
}

// ZapLogger implements Logger on top of a zap.SugaredLogger with console
// encoding, suited to a job whose stdout is read by humans.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// New builds a console-encoded ZapLogger at the given level. Unknown
// level strings fall back to info.
func New(level string) (*ZapLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stdout"}

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapLogger{s: base.Sugar()}, nil
}

func (l *ZapLogger) Debug(msg string) { l.s.Debug(msg) }
func (l *ZapLogger) Info(msg string)  { l.s.Info(msg) }
func (l *ZapLogger) Warn(msg string)  { l.s.Warn(msg) }

func (l *ZapLogger) DebugObj(msg, event string, fields map[string]any) {
	l.s.Debugw(msg, kvPairs(event, fields)...)
}

func (l *ZapLogger) InfoObj(msg, event string, fields map[string]any) {
	l.s.Infow(msg, kvPairs(event, fields)...)
}

func (l *ZapLogger) WarnObj(msg, event string, fields map[string]any) {
	l.s.Warnw(msg, kvPairs(event, fields)...)
}

// Sync flushes buffered log entries. Errors are ignored on purpose:
// syncing stdout fails on some platforms and there is nothing to do.
func (l *ZapLogger) Sync() { _ = l.s.Sync() }

// kvPairs flattens the event tag and fields into zap's variadic key/value
// form, with field keys sorted for stable output.
func kvPairs(event string, fields map[string]any) []any {
	kvs := make([]any, 0, 2+2*len(fields))
	kvs = append(kvs, "event", event)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		kvs = append(kvs, k, fields[k])
	}
	return kvs
}

// NopLogger discards everything. Useful as a nil-collaborator default.
type NopLogger struct{}

func (NopLogger) Debug(string) {}
func (NopLogger) Info(string)  {}
func (NopLogger) Warn(string)  {}

func (NopLogger) DebugObj(string, string, map[string]any) {}
func (NopLogger) InfoObj(string, string, map[string]any)  {}
func (NopLogger) WarnObj(string, string, map[string]any)  {}
