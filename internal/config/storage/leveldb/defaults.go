package leveldb

// LevelDB存储默认配置值
// 这些默认值基于goleveldb的最佳实践和区块链存储需求
const (
	// DefaultMaxOpenFiles 默认最大打开文件数为1024
	// 原因：LevelDB每个SST文件占用一个文件描述符，
	// 1024在常见的系统fd限制内为引擎留出足够余量
	DefaultMaxOpenFiles = 1024

	// DefaultBlockSize 默认块大小为4KB
	// 原因：4KB对齐常见文件系统页大小，平衡随机读和压缩率
	DefaultBlockSize = 4 * 1024

	// DefaultWriteBufferSize 默认写缓冲为16MB
	// 原因：区块链写多读少，较大的memtable减少L0压缩频率
	DefaultWriteBufferSize = 16 * 1024 * 1024

	// DefaultCacheSize 默认块缓存为128MB
	// 原因：热点状态数据的工作集通常在该量级，命中率收益明显
	DefaultCacheSize = 128 * 1024 * 1024
)
