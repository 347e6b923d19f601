package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pdf-agent/internal/application/port/output"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

// LoggerAdapter writes structured JSON log lines to a per-run file under
// log/ and mirrors warnings and errors to stderr.
type LoggerAdapter struct {
	root  *zap.Logger
	sugar *zap.SugaredLogger
}

func NewLoggerAdapter(name string) (*LoggerAdapter, error) {
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), sanitize(name))
	file, err := os.Create(filepath.Join("log", filename))
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encCfg)

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(file), zapcore.DebugLevel),
		zapcore.NewCore(enc, zapcore.AddSync(os.Stderr), zapcore.WarnLevel),
	)

	root := zap.New(core)
	return &LoggerAdapter{root: root, sugar: root.Sugar()}, nil
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return &LoggerAdapter{
		root:  l.root,
		sugar: l.sugar.With(key, value),
	}
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &LoggerAdapter{
		root:  l.root,
		sugar: l.sugar.With(args...),
	}
}

func (l *LoggerAdapter) Close() error {
	// Sync on a stderr sink reports EINVAL on some platforms; the file
	// sink is what matters.
	if err := l.root.Sync(); err != nil {
		return nil
	}
	return nil
}

func sanitize(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			result = append(result, r)
		case r == ' ':
			result = append(result, '_')
		}
	}
	if len(result) == 0 {
		return "session"
	}
	if len(result) > 50 {
		result = result[:50]
	}
	return string(result)
}
