// Package database 提供存储工厂的通用配置定义
package database

import "strconv"

// 配置键常量
// 工厂识别的全部选项；未识别的键被忽略，缺失的键回落到引擎默认值
const (
	// PropDBType 后端类型，选择内置适配器或驱动名称
	PropDBType = "db_type"

	// PropDBName 逻辑名称，引擎表/命名空间标识
	PropDBName = "db_name"

	// PropDBPath 文件系统路径，持久化引擎的目录/文件根
	PropDBPath = "db_path"

	// PropPersistent 持久化标志，选择持久或临时mock变体
	PropPersistent = "persistent"

	// PropEnableAutoCommit 缓存装饰器的自动提交模式
	PropEnableAutoCommit = "enable_auto_commit"

	// PropEnableHeapCache 是否启用堆缓存装饰器
	PropEnableHeapCache = "enable_heap_cache"

	// PropEnableHeapCacheStats 是否启用堆缓存命中统计
	PropEnableHeapCacheStats = "enable_heap_cache_stats"

	// PropMaxHeapCacheSize 堆缓存最大待写条目数
	PropMaxHeapCacheSize = "max_heap_cache_size"

	// PropEnableLocking 是否启用锁装饰器
	PropEnableLocking = "enable_locking"

	// PropEnableDBCache 引擎侧缓存开关，透传给原生引擎
	PropEnableDBCache = "enable_db_cache"

	// PropEnableDBCompression 引擎侧压缩开关，透传给原生引擎
	PropEnableDBCompression = "enable_db_compression"

	// PropMaxFDAlloc 最大文件描述符配额，透传给原生引擎
	PropMaxFDAlloc = "max_fd_alloc_size"

	// PropBlockSize 块大小，透传给原生引擎
	PropBlockSize = "block_size"

	// PropWriteBufferSize 写缓冲大小，透传给原生引擎
	PropWriteBufferSize = "write_buffer_size"

	// PropReadBufferSize 读缓冲大小，透传给原生引擎
	PropReadBufferSize = "read_buffer_size"

	// PropDBCacheSize 引擎侧块缓存容量，透传给原生引擎
	PropDBCacheSize = "cache_size"
)

// DefaultMaxHeapCacheSize 堆缓存默认最大待写条目数
// 达到上限即触发落盘，限制未提交变更占用的内存
const DefaultMaxHeapCacheSize = 1024

// Properties 存储配置：选项名到字符串值的映射
// 与引擎无关；每个引擎的配置包负责把这里的字符串翻译成原生选项
type Properties map[string]string

// Get 获取配置项的字符串值，缺失时返回空字符串
func (p Properties) Get(key string) string {
	return p[key]
}

// GetBool 获取布尔配置项
// 缺失或无法解析时返回false，与原始配置语义保持一致
func (p Properties) GetBool(key string) bool {
	v, err := strconv.ParseBool(p[key])
	if err != nil {
		return false
	}
	return v
}

// GetInt 获取整数配置项，缺失或无法解析时返回引擎默认值
func (p Properties) GetInt(key string, defaultValue int) int {
	if p[key] == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(p[key])
	if err != nil {
		return defaultValue
	}
	return v
}

// Copy 返回配置的浅拷贝
// 工厂向驱动转交配置时使用，避免驱动改写调用方的配置
func (p Properties) Copy() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
