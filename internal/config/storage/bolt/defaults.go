package bolt

import "time"

// Bolt存储默认配置值
// 这些默认值基于bbolt的最佳实践
const (
	// DefaultFileMode 默认数据库文件权限
	// 原因：数据库文件仅节点进程自身读写
	DefaultFileMode = 0600

	// DefaultOpenTimeout 默认打开超时为5秒
	// 原因：bbolt通过文件锁独占数据库文件，
	// 有限的等待时间让锁冲突表现为明确的打开失败而非无限阻塞
	DefaultOpenTimeout = 5 * time.Second

	// DefaultInitialMmapSize 默认初始mmap大小为64MB
	// 原因：预分配映射窗口减少增长时的重映射，
	// 仅在启用引擎侧缓存时生效
	DefaultInitialMmapSize = 64 * 1024 * 1024
)
