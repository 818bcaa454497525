package badger

import (
	database "github.com/nexachain/v1/internal/config/storage/database"
)

// Options BadgerDB存储配置选项
// 专注于基础设施核心功能的简化配置
type Options struct {
	// === 基础配置 ===
	Name       string `json:"name"`        // 逻辑名称（表/命名空间标识）
	Path       string `json:"path"`        // 数据库存储路径
	SyncWrites bool   `json:"sync_writes"` // 是否同步写入（数据安全性）

	// === 引擎调优配置 ===
	EnableCache       bool  `json:"enable_cache"`       // 是否启用块/索引缓存
	EnableCompression bool  `json:"enable_compression"` // 是否启用Snappy压缩
	BlockSize         int   `json:"block_size"`         // SST块大小
	MemTableSize      int64 `json:"mem_table_size"`     // 内存表大小
	CacheSize         int64 `json:"cache_size"`         // 块/索引缓存容量
}

// Config BadgerDB配置实现
type Config struct {
	options *Options
}

// NewFromProps 从通用存储配置构建BadgerDB配置
// 缺失的调优项回落到defaults.go中的引擎默认值
// 注意：BadgerDB没有文件描述符配额选项，max_fd_alloc_size被忽略
func NewFromProps(props database.Properties) *Config {
	return &Config{
		options: &Options{
			Name:              props.Get(database.PropDBName),
			Path:              props.Get(database.PropDBPath),
			SyncWrites:        DefaultSyncWrites,
			EnableCache:       props.GetBool(database.PropEnableDBCache),
			EnableCompression: props.GetBool(database.PropEnableDBCompression),
			BlockSize:         props.GetInt(database.PropBlockSize, DefaultBlockSize),
			MemTableSize:      int64(props.GetInt(database.PropWriteBufferSize, DefaultMemTableSize)),
			CacheSize:         int64(props.GetInt(database.PropDBCacheSize, DefaultCacheSize)),
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

// IsSyncWritesEnabled 是否启用同步写入
func (c *Config) IsSyncWritesEnabled() bool { return c.options.SyncWrites }

// IsCacheEnabled 是否启用块/索引缓存
func (c *Config) IsCacheEnabled() bool { return c.options.EnableCache }

// IsCompressionEnabled 是否启用压缩
func (c *Config) IsCompressionEnabled() bool { return c.options.EnableCompression }

// GetBlockSize 获取块大小
func (c *Config) GetBlockSize() int { return c.options.BlockSize }

// GetMemTableSize 获取内存表大小
func (c *Config) GetMemTableSize() int64 { return c.options.MemTableSize }

// GetCacheSize 获取块/索引缓存容量
func (c *Config) GetCacheSize() int64 { return c.options.CacheSize }
