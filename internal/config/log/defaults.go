package log

// 日志配置默认值
// 这些默认值基于生产环境的最佳实践和常见的日志配置
const (
	// defaultLogLevel 默认日志级别设为"info"
	// 原因：info级别平衡了信息量和性能，记录重要事件但不过于详细
	defaultLogLevel = "info"

	// defaultToConsole 默认启用控制台输出
	// 原因：开发和调试时需要实时查看日志，控制台输出提供即时反馈
	defaultToConsole = true

	// defaultFilePath 默认日志文件路径
	// 原因：统一的数据目录便于管理，空路径表示仅控制台输出
	defaultFilePath = ""

	// === 日志轮转配置 ===

	// defaultMaxSize 单个日志文件最大大小设为100MB
	// 原因：适中的文件大小便于日志分析工具处理和传输
	defaultMaxSize = 100

	// defaultMaxBackups 最大备份文件数设为10
	// 原因：保留10个备份文件提供足够的历史记录用于问题排查
	defaultMaxBackups = 10

	// defaultMaxAge 日志文件最大保留天数设为30天
	// 原因：30天覆盖了大多数问题排查的时间窗口
	defaultMaxAge = 30

	// defaultCompress 默认启用历史日志压缩
	// 原因：压缩可以显著减少磁盘空间占用
	defaultCompress = true

	// === 调试配置 ===

	// defaultEnableCaller 默认启用调用者信息
	// 原因：调用者信息对于定位问题非常重要
	defaultEnableCaller = true
)
