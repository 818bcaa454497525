package bolt

import (
	"time"

	database "github.com/nexachain/v1/internal/config/storage/database"
)

// Options Bolt存储配置选项
// 注意：bbolt是B+树引擎，没有块压缩能力，
// enable_db_compression被静默忽略（与引擎能力保持一致）
type Options struct {
	// === 基础配置 ===
	Name string `json:"name"` // 逻辑名称（桶标识）
	Path string `json:"path"` // 数据库文件所在目录

	// === 引擎调优配置 ===
	EnableCache     bool          `json:"enable_cache"`      // 是否预分配mmap窗口
	OpenTimeout     time.Duration `json:"open_timeout"`      // 文件锁等待超时
	InitialMmapSize int           `json:"initial_mmap_size"` // 初始mmap大小
}

// Config Bolt配置实现
type Config struct {
	options *Options
}

// NewFromProps 从通用存储配置构建Bolt配置
func NewFromProps(props database.Properties) *Config {
	return &Config{
		options: &Options{
			Name:            props.Get(database.PropDBName),
			Path:            props.Get(database.PropDBPath),
			EnableCache:     props.GetBool(database.PropEnableDBCache),
			OpenTimeout:     DefaultOpenTimeout,
			InitialMmapSize: DefaultInitialMmapSize,
		},
	}
}

// NewFromOptions 从Options创建配置实现
func NewFromOptions(options *Options) *Config {
	return &Config{options: options}
}

// GetName 获取逻辑名称
func (c *Config) GetName() string { return c.options.Name }

// GetPath 获取数据库目录
func (c *Config) GetPath() string { return c.options.Path }

// IsCacheEnabled 是否预分配mmap窗口
func (c *Config) IsCacheEnabled() bool { return c.options.EnableCache }

// GetOpenTimeout 获取文件锁等待超时
func (c *Config) GetOpenTimeout() time.Duration { return c.options.OpenTimeout }

// GetInitialMmapSize 获取初始mmap大小
func (c *Config) GetInitialMmapSize() int { return c.options.InitialMmapSize }
