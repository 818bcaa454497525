// Package log 提供NEX系统的日志级别接口定义
//
// 📊 **日志级别管理 (Log Level Management)**
//
// 本文件定义了NEX系统的日志级别，专注于：
// - 日志级别定义：提供标准的日志级别常量和枚举
// - 字符串转换：提供日志级别和字符串的相互转换
// - 默认配置：提供合理的默认日志级别设置
package log

// LogLevel 日志级别类型
type LogLevel string

// 日志级别常量
const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// String 返回日志级别的字符串表示
func (l LogLevel) String() string {
	return string(l)
}

// ParseLevel 从字符串解析日志级别
// 无法识别的级别返回InfoLevel作为安全默认值
func ParseLevel(s string) LogLevel {
	switch LogLevel(s) {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return LogLevel(s)
	default:
		return InfoLevel
	}
}
