package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface used across the app; key names
// the event so log queries can group on it
type Logger interface {
	DebugObj(msg, key string, fields map[string]any)
	InfoObj(msg, key string, fields map[string]any)
	WarnObj(msg, key string, fields map[string]any)
	ErrorObj(msg, key string, fields map[string]any)
	Sync() error
}

type zapLogger struct {
	z *zap.Logger
}

// New builds a JSON zap logger at the given level (debug, info, warn, error)
// writing to stderr
func New(level string) (Logger, error) {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter builds the same JSON logger on top of w
func NewWithWriter(level string, w io.Writer) (Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return &zapLogger{z: zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))}, nil
}

// FromZap wraps an existing zap logger
func FromZap(z *zap.Logger) Logger {
	if z == nil {
		return NopLogger{}
	}
	return &zapLogger{z: z}
}

func (l *zapLogger) DebugObj(msg, key string, fields map[string]any) {
	l.z.Debug(msg, toFields(key, fields)...)
}

func (l *zapLogger) InfoObj(msg, key string, fields map[string]any) {
	l.z.Info(msg, toFields(key, fields)...)
}

func (l *zapLogger) WarnObj(msg, key string, fields map[string]any) {
	l.z.Warn(msg, toFields(key, fields)...)
}

func (l *zapLogger) ErrorObj(msg, key string, fields map[string]any) {
	l.z.Error(msg, toFields(key, fields)...)
}

func (l *zapLogger) Sync() error {
	return l.z.Sync()
}

func toFields(key string, fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	if key != "" {
		out = append(out, zap.String("event", key))
	}
	for k, v := range fields {
		if err, ok := v.(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) DebugObj(string, string, map[string]any) {}
func (NopLogger) InfoObj(string, string, map[string]any)  {}
func (NopLogger) WarnObj(string, string, map[string]any)  {}
func (NopLogger) ErrorObj(string, string, map[string]any) {}
func (NopLogger) Sync() error                             { return nil }

// Ensure returns log, or a NopLogger when log is nil
func Ensure(log Logger) Logger {
	if log == nil {
		return NopLogger{}
	}
	return log
}
