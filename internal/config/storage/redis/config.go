package redis

import (
	"time"

	database "github.com/nexachain/v1/internal/config/storage/database"
)

// Options Redis存储配置选项
// 服务端后端：db_path承载服务器地址（host:port），
// db_name作为键命名空间前缀实现逻辑表隔离
type Options struct {
	// === 基础配置 ===
	Name string `json:"name"` // 逻辑名称（键命名空间前缀）
	Addr string `json:"addr"` // Redis服务器地址

	// === 连接配置 ===
	PoolSize    int           `json:"pool_size"`    // 连接池大小
	DialTimeout time.Duration `json:"dial_timeout"` // 连接超时
	ScanCount   int64         `json:"scan_count"`   // SCAN批大小
}

// Config Redis配置实现
type Config struct {
	options *Options
}

// NewFromProps 从通用存储配置构建Redis配置
// 引擎调优键（块大小、写缓冲等）对服务端后端无意义，被忽略
func NewFromProps(props database.Properties) *Config {
	return &Config{
		options: &Options{
			Name:        props.Get(database.PropDBName),
			Addr:        props.Get(database.PropDBPath),
			PoolSize:    DefaultPoolSize,
			DialTimeout: DefaultDialTimeout,
			ScanCount:   DefaultScanCount,
		},
	}
}

// NewFromOptions 从Options创建配置实现
func NewFromOptions(options *Options) *Config {
	return &Config{options: options}
}

// GetName 获取逻辑名称
func (c *Config) GetName() string { return c.options.Name }

// GetAddr 获取服务器地址
func (c *Config) GetAddr() string { return c.options.Addr }

// GetPoolSize 获取连接池大小
func (c *Config) GetPoolSize() int { return c.options.PoolSize }

// GetDialTimeout 获取连接超时
func (c *Config) GetDialTimeout() time.Duration { return c.options.DialTimeout }

// GetScanCount 获取SCAN批大小
func (c *Config) GetScanCount() int64 { return c.options.ScanCount }
