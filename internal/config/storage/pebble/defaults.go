package pebble

// Pebble存储默认配置值
// 这些默认值基于Pebble的最佳实践和区块链存储需求
const (
	// DefaultMaxOpenFiles 默认最大打开文件数为1024
	// 原因：与LevelDB同源的fd占用模型，1024为引擎留出足够余量
	DefaultMaxOpenFiles = 1024

	// DefaultBlockSize 默认块大小为4KB
	// 原因：4KB对齐常见文件系统页大小，平衡随机读和压缩率
	DefaultBlockSize = 4 * 1024

	// DefaultWriteBufferSize 默认写缓冲为32MB
	// 原因：Pebble的memtable轮换成本低于LevelDB，
	// 较大的写缓冲进一步摊薄区块写入时的压缩开销
	DefaultWriteBufferSize = 32 * 1024 * 1024

	// DefaultReadBufferSize 默认读缓冲为32MB
	// 原因：迭代和状态回放场景下的预读工作集大小
	DefaultReadBufferSize = 32 * 1024 * 1024

	// DefaultCacheSize 默认块缓存为128MB
	// 原因：与LevelDB适配器保持一致的热点数据工作集假设
	DefaultCacheSize = 128 * 1024 * 1024
)
