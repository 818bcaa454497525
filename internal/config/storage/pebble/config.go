package pebble

import (
	database "github.com/nexachain/v1/internal/config/storage/database"
)

// Options Pebble存储配置选项
type Options struct {
	// === 基础配置 ===
	Name string `json:"name"` // 逻辑名称（表/命名空间标识）
	Path string `json:"path"` // 数据库存储路径

	// === 引擎调优配置 ===
	EnableCache       bool `json:"enable_cache"`       // 是否启用引擎侧块缓存
	EnableCompression bool `json:"enable_compression"` // 是否启用Snappy压缩
	MaxOpenFiles      int  `json:"max_open_files"`     // 最大打开文件数
	BlockSize         int  `json:"block_size"`         // SST块大小
	WriteBufferSize   int  `json:"write_buffer_size"`  // 写缓冲（memtable）大小
	ReadBufferSize    int  `json:"read_buffer_size"`   // 读缓冲大小
	CacheSize         int  `json:"cache_size"`         // 块缓存容量
}

// Config Pebble配置实现
type Config struct {
	options *Options
}

// NewFromProps 从通用存储配置构建Pebble配置
// 缺失的调优项回落到defaults.go中的引擎默认值
func NewFromProps(props database.Properties) *Config {
	return &Config{
		options: &Options{
			Name:              props.Get(database.PropDBName),
			Path:              props.Get(database.PropDBPath),
			EnableCache:       props.GetBool(database.PropEnableDBCache),
			EnableCompression: props.GetBool(database.PropEnableDBCompression),
			MaxOpenFiles:      props.GetInt(database.PropMaxFDAlloc, DefaultMaxOpenFiles),
			BlockSize:         props.GetInt(database.PropBlockSize, DefaultBlockSize),
			WriteBufferSize:   props.GetInt(database.PropWriteBufferSize, DefaultWriteBufferSize),
			ReadBufferSize:    props.GetInt(database.PropReadBufferSize, DefaultReadBufferSize),
			CacheSize:         props.GetInt(database.PropDBCacheSize, DefaultCacheSize),
		},
	}
}

// NewFromOptions 从Options创建配置实现
func NewFromOptions(options *Options) *Config {
	return &Config{options: options}
}

// GetName 获取逻辑名称
func (c *Config) GetName() string { return c.options.Name }

// GetPath 获取数据库路径
func (c *Config) GetPath() string { return c.options.Path }

// IsCacheEnabled 是否启用引擎侧缓存
func (c *Config) IsCacheEnabled() bool { return c.options.EnableCache }

// IsCompressionEnabled 是否启用压缩
func (c *Config) IsCompressionEnabled() bool { return c.options.EnableCompression }

// GetMaxOpenFiles 获取最大打开文件数
func (c *Config) GetMaxOpenFiles() int { return c.options.MaxOpenFiles }

// GetBlockSize 获取块大小
func (c *Config) GetBlockSize() int { return c.options.BlockSize }

// GetWriteBufferSize 获取写缓冲大小
func (c *Config) GetWriteBufferSize() int { return c.options.WriteBufferSize }

// GetReadBufferSize 获取读缓冲大小
func (c *Config) GetReadBufferSize() int { return c.options.ReadBufferSize }

// GetCacheSize 获取块缓存容量
func (c *Config) GetCacheSize() int { return c.options.CacheSize }
