package logger

import (
	// 外部依赖
	"context"
	"os"

	otelzap "github.com/uptrace/opentelemetry-go-extra/otelzap"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path     string
	LogLevel string
	ServiceEnv
}

var global *otelzap.Logger

// Init 初始化全局日志，文件轮转 + 标准输出双写
func Init(conf *LogConfig) {
	level := zapcore.InfoLevel
	if l, err := zapcore.ParseLevel(conf.LogLevel); err == nil {
		level = l
	}

	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encConf)

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, fileWriter, level),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	)

	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).With(
		zap.String("platform", conf.Platform),
		zap.String("service", conf.Service),
		zap.String("env", conf.Env),
	)

	global = otelzap.New(base, otelzap.WithMinLevel(level))
}

func Close() {
	if global != nil {
		_ = global.Sync()
	}
}

func logger() *otelzap.Logger {
	if global == nil {
		// 未初始化时兜底，避免空指针（例如单测场景）
		global = otelzap.New(zap.NewNop())
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...any) {
	logger().Ctx(ctx).Sugar().Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	logger().Ctx(ctx).Sugar().Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	logger().Ctx(ctx).Sugar().Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	logger().Ctx(ctx).Sugar().Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	logger().Ctx(ctx).Sugar().Fatalf(format, args...)
}
