package logger

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the application logger. Plain methods take a message followed by
// alternating key/value pairs; the f variants take a printf template.
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Debugf(ctx context.Context, template string, args ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Infof(ctx context.Context, template string, args ...any)
	Warn(ctx context.Context, msg string, keysAndValues ...any)
	Warnf(ctx context.Context, template string, args ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
	Errorf(ctx context.Context, template string, args ...any)
	Fatal(ctx context.Context, msg string, keysAndValues ...any)
	Fatalf(ctx context.Context, template string, args ...any)
	With(keysAndValues ...any) Logger
	Sync() error
}

type ZapConfig struct {
	Level    string
	Mode     string
	Encoding string
}

type zapLogger struct {
	sugarLogger *zap.SugaredLogger
	cfg         *ZapConfig
}

func InitializeTestZapLogger() Logger {
	logger := zapLogger{
		cfg: &ZapConfig{
			Level:    "debug",
			Mode:     "testing",
			Encoding: "console",
		},
	}
	logger.init(os.Stderr)
	return &logger
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return &zapLogger{
		sugarLogger: zap.NewNop().Sugar(),
		cfg:         &ZapConfig{},
	}
}

func InitializeZapLogger(cfg ZapConfig) Logger {
	logger := zapLogger{
		cfg: &cfg,
	}
	logger.init(os.Stderr)
	return &logger
}

// For mapping config logger to app logger levels
var logLevelMap = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"info":   zapcore.InfoLevel,
	"warn":   zapcore.WarnLevel,
	"error":  zapcore.ErrorLevel,
	"fatal":  zapcore.FatalLevel,
	"panic":  zapcore.PanicLevel,
	"dpanic": zapcore.DPanicLevel,
}

func (l *zapLogger) getLoggerLevel() zapcore.Level {
	level, exist := logLevelMap[l.cfg.Level]
	if !exist {
		return zapcore.DebugLevel
	}
	return level
}

func (l *zapLogger) init(w io.Writer) {
	logLevel := l.getLoggerLevel()

	logWriter := zapcore.AddSync(w)

	var encoderCfg zapcore.EncoderConfig
	if l.cfg.Mode == "production" {
		encoderCfg = zap.NewProductionEncoderConfig()
	} else {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	}

	encoderCfg.LevelKey = "LEVEL"
	encoderCfg.CallerKey = "CALLER"
	encoderCfg.TimeKey = "TIME"
	encoderCfg.NameKey = "NAME"
	encoderCfg.MessageKey = "MESSAGE"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if l.cfg.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, logWriter, zap.NewAtomicLevelAt(logLevel))
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	l.sugarLogger = logger.Sugar()
}

// loggerKey holds the context key used for loggers.
type loggerKey struct{}

// WithContext stores a request scoped logger in ctx. Messages logged with that
// ctx carry the logger's fields.
func WithContext(ctx context.Context, l Logger) context.Context {
	zl, ok := l.(*zapLogger)
	if !ok {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, zl.sugarLogger)
}

func (l *zapLogger) ctx(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		panic("nil context passed to Logger")
	}
	if logger, _ := ctx.Value(loggerKey{}).(*zap.SugaredLogger); logger != nil {
		return logger
	}

	return l.sugarLogger
}

func (l *zapLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	l.ctx(ctx).Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Debugf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Debugf(template, args...)
}

func (l *zapLogger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	l.ctx(ctx).Infow(msg, keysAndValues...)
}

func (l *zapLogger) Infof(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Infof(template, args...)
}

func (l *zapLogger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	l.ctx(ctx).Warnw(msg, keysAndValues...)
}

func (l *zapLogger) Warnf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Warnf(template, args...)
}

func (l *zapLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	l.ctx(ctx).Errorw(msg, keysAndValues...)
}

func (l *zapLogger) Errorf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Errorf(template, args...)
}

func (l *zapLogger) Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	l.ctx(ctx).Fatalw(msg, keysAndValues...)
}

func (l *zapLogger) Fatalf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Fatalf(template, args...)
}

func (l *zapLogger) With(keysAndValues ...any) Logger {
	return &zapLogger{
		sugarLogger: l.sugarLogger.With(keysAndValues...),
		cfg:         l.cfg,
	}
}

func (l *zapLogger) Sync() error {
	return l.sugarLogger.Sync()
}
