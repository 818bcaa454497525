package badger

// BadgerDB存储默认配置值
// 这些默认值基于BadgerDB的最佳实践和区块链存储需求
const (
	// DefaultSyncWrites 默认启用同步写入
	// 原因：区块链数据需要强一致性，同步写入确保数据安全性
	// 虽然性能略有损失，但数据完整性更重要
	DefaultSyncWrites = true

	// DefaultMemTableSize 默认内存表大小为64MB
	// 原因：64MB提供良好的读写性能，适合区块链的数据访问模式
	// 平衡内存使用和I/O性能
	DefaultMemTableSize = 64 * 1024 * 1024

	// DefaultBlockSize 默认块大小为4KB
	// 原因：与其他LSM引擎保持一致的页对齐假设
	DefaultBlockSize = 4 * 1024

	// DefaultCacheSize 默认块缓存为64MB
	// 原因：BadgerDB默认256MB缓存在节点进程中偏高，
	// 64MB足够大多数链数据索引查询，同时保持合理的RSS占用
	DefaultCacheSize = 64 * 1024 * 1024

	// DefaultValueLogFileSize 默认值日志文件大小为512MB
	// 原因：BadgerDB使用mmap映射值日志文件，
	// 降低单文件大小减少虚拟地址空间占用
	DefaultValueLogFileSize = 512 * 1024 * 1024
)
