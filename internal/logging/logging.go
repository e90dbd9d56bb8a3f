package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/raysh454/kumo/internal/interfaces"
)

// ZapLogger implements interfaces.Logger on top of go.uber.org/zap.
type ZapLogger struct {
	l *zap.Logger
}

// New creates a production-configured logger writing JSON lines to stderr.
// component is optional and is attached as a persistent field.
func New(component string) *ZapLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	if component != "" {
		logger = logger.With(zap.String("component", component))
	}
	return &ZapLogger{l: logger}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{l: zap.NewNop()}
}

func zapFields(fields []interfaces.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

func (z *ZapLogger) Debug(msg string, fields ...interfaces.Field) {
	z.l.Debug(msg, zapFields(fields)...)
}

func (z *ZapLogger) Info(msg string, fields ...interfaces.Field) {
	z.l.Info(msg, zapFields(fields)...)
}

func (z *ZapLogger) Warn(msg string, fields ...interfaces.Field) {
	z.l.Warn(msg, zapFields(fields)...)
}

func (z *ZapLogger) Error(msg string, fields ...interfaces.Field) {
	z.l.Error(msg, zapFields(fields)...)
}

func (z *ZapLogger) With(fields ...interfaces.Field) interfaces.Logger {
	return &ZapLogger{l: z.l.With(zapFields(fields)...)}
}
