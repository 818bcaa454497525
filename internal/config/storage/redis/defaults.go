package redis

import "time"

// Redis存储默认配置值
// 这些默认值基于go-redis的最佳实践和服务端存储的访问模式
const (
	// DefaultPoolSize 默认连接池大小为10
	// 原因：存储句柄的操作是同步阻塞的，10个连接
	// 足够覆盖锁装饰器允许的并发读
	DefaultPoolSize = 10

	// DefaultDialTimeout 默认连接超时为5秒
	// 原因：Open阶段的ping需要在有限时间内把
	// 服务端不可达表现为明确的StorageUnavailable
	DefaultDialTimeout = 5 * time.Second

	// DefaultScanCount 默认SCAN批大小为256
	// 原因：迭代器按批拉取键，256平衡往返次数和单批延迟
	DefaultScanCount = 256
)
