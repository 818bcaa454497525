// Package log 提供了一个通用的日志接口和基于zap的实现
// 它支持不同级别的日志记录、结构化日志、日志旋转等功能
package log

import (
	"fmt"
	"os"
	"sync"

	logconfig "github.com/nexachain/v1/internal/config/log"
	logInterface "github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// 全局日志实例，使用接口类型
	globalLogger logInterface.Logger
	// 用于保护全局日志实例的互斥锁
	mu sync.RWMutex
)

// Logger 是日志记录器的结构体，实现了log.Logger接口
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

// 初始化全局日志记录器
func init() {
	ResetDefault()
}

// ResetDefault 重置全局日志记录器为默认配置
func ResetDefault() {
	logger, err := New(logconfig.New(nil))
	if err != nil {
		// 在初始化日志器失败时使用控制台输出错误
		fmt.Fprintf(os.Stderr, "Failed to initialize default logger: %v\n", err)
		return
	}
	SetLogger(logger)
}

// SetLogger 设置全局日志记录器
func SetLogger(logger logInterface.Logger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = logger
}

// GetLogger 获取全局日志记录器
func GetLogger() logInterface.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// New 根据配置创建日志记录器
func New(config *logconfig.Config) (*Logger, error) {
	if config == nil {
		config = logconfig.New(nil)
	}

	level := parseZapLevel(config.GetLevel())

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core

	// 控制台输出
	if config.IsConsoleEnabled() {
		consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level))
	}

	// 文件输出（带lumberjack轮转）
	if config.GetFilePath() != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   config.GetFilePath(),
			MaxSize:    config.GetMaxSize(),
			MaxBackups: config.GetMaxBackups(),
			MaxAge:     config.GetMaxAge(),
			Compress:   config.IsCompressEnabled(),
		}
		fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(fileWriter), level))
	}

	if len(cores) == 0 {
		// 既无控制台也无文件时退化为标准错误输出，保证日志不丢失
		consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level))
	}

	var opts []zap.Option
	if config.IsCallerEnabled() {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	zapLogger := zap.New(zapcore.NewTee(cores...), opts...)

	return &Logger{
		zapLogger: zapLogger,
		sugar:     zapLogger.Sugar(),
	}, nil
}

// parseZapLevel 将配置的级别字符串转换为zap级别
func parseZapLevel(level string) zapcore.Level {
	switch logInterface.ParseLevel(level) {
	case logInterface.DebugLevel:
		return zapcore.DebugLevel
	case logInterface.WarnLevel:
		return zapcore.WarnLevel
	case logInterface.ErrorLevel:
		return zapcore.ErrorLevel
	case logInterface.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Debug 记录调试级别的日志
func (l *Logger) Debug(msg string) { l.sugar.Debug(msg) }

// Debugf 使用格式化字符串记录调试级别的日志
func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

// Info 记录信息级别的日志
func (l *Logger) Info(msg string) { l.sugar.Info(msg) }

// Infof 使用格式化字符串记录信息级别的日志
func (l *Logger) Infof(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

// Warn 记录警告级别的日志
func (l *Logger) Warn(msg string) { l.sugar.Warn(msg) }

// Warnf 使用格式化字符串记录警告级别的日志
func (l *Logger) Warnf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

// Error 记录错误级别的日志
func (l *Logger) Error(msg string) { l.sugar.Error(msg) }

// Errorf 使用格式化字符串记录错误级别的日志
func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// Fatal 记录致命级别的日志，然后退出程序
func (l *Logger) Fatal(msg string) { l.sugar.Fatal(msg) }

// Fatalf 使用格式化字符串记录致命级别的日志，然后退出程序
func (l *Logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

// With 返回一个带有额外字段的Logger
func (l *Logger) With(args ...interface{}) logInterface.Logger {
	newSugar := l.sugar.With(args...)
	return &Logger{
		zapLogger: newSugar.Desugar(),
		sugar:     newSugar,
	}
}

// Sync 同步日志缓冲区到输出
func (l *Logger) Sync() error { return l.zapLogger.Sync() }

// GetZapLogger 获取原始的zap日志记录器
func (l *Logger) GetZapLogger() *zap.Logger { return l.zapLogger }
