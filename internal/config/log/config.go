package log

// LogOptions 日志配置选项
// 专注于基础设施核心功能的简化配置
type LogOptions struct {
	// === 基础配置 ===
	Level     string `json:"level"`      // 日志级别 (debug, info, warn, error, fatal)
	ToConsole bool   `json:"to_console"` // 是否输出到控制台
	FilePath  string `json:"file_path"`  // 日志文件路径（空表示仅控制台）

	// === 基础轮转配置 ===
	MaxSize    int  `json:"max_size"`    // 单个日志文件最大大小(MB)
	MaxBackups int  `json:"max_backups"` // 最大备份文件数
	MaxAge     int  `json:"max_age"`     // 日志文件最大保留天数
	Compress   bool `json:"compress"`    // 是否压缩历史日志文件

	// === 调试配置 ===
	EnableCaller bool `json:"enable_caller"` // 是否启用调用者信息
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 创建日志配置实现
// userOptions为nil时使用全部默认值
func New(userOptions *LogOptions) *Config {
	options := createDefaultLogOptions()

	if userOptions != nil {
		if userOptions.Level != "" {
			options.Level = userOptions.Level
		}
		options.ToConsole = userOptions.ToConsole
		if userOptions.FilePath != "" {
			options.FilePath = userOptions.FilePath
		}
		if userOptions.MaxSize > 0 {
			options.MaxSize = userOptions.MaxSize
		}
		if userOptions.MaxBackups > 0 {
			options.MaxBackups = userOptions.MaxBackups
		}
		if userOptions.MaxAge > 0 {
			options.MaxAge = userOptions.MaxAge
		}
	}

	return &Config{options: options}
}

// createDefaultLogOptions 创建默认日志配置
func createDefaultLogOptions() *LogOptions {
	return &LogOptions{
		Level:        defaultLogLevel,
		ToConsole:    defaultToConsole,
		FilePath:     defaultFilePath,
		MaxSize:      defaultMaxSize,
		MaxBackups:   defaultMaxBackups,
		MaxAge:       defaultMaxAge,
		Compress:     defaultCompress,
		EnableCaller: defaultEnableCaller,
	}
}

// GetLevel 获取日志级别
func (c *Config) GetLevel() string { return c.options.Level }

// IsConsoleEnabled 是否输出到控制台
func (c *Config) IsConsoleEnabled() bool { return c.options.ToConsole }

// GetFilePath 获取日志文件路径
func (c *Config) GetFilePath() string { return c.options.FilePath }

// GetMaxSize 获取单个日志文件最大大小(MB)
func (c *Config) GetMaxSize() int { return c.options.MaxSize }

// GetMaxBackups 获取最大备份文件数
func (c *Config) GetMaxBackups() int { return c.options.MaxBackups }

// GetMaxAge 获取日志文件最大保留天数
func (c *Config) GetMaxAge() int { return c.options.MaxAge }

// IsCompressEnabled 是否压缩历史日志
func (c *Config) IsCompressEnabled() bool { return c.options.Compress }

// IsCallerEnabled 是否启用调用者信息
func (c *Config) IsCallerEnabled() bool { return c.options.EnableCaller }
