// Package storage 提供NEX系统的键值数据库接口定义
//
// 💾 **键值数据库能力契约 (Key-Value Database Capability Contract)**
//
// 本文件定义了NEX区块链系统的统一键值数据库接口，专注于：
// - 统一抽象：所有存储引擎（LSM树、B树、内存、远程）实现同一契约
// - 生命周期管理：打开、关闭、状态查询的统一语义
// - 字节序列存储：键和值均为不透明的字节序列，存储层之上不施加任何模式
// - 可组合装饰器：缓存、锁、计时装饰器同样实现本契约，可任意叠放
//
// 🎯 **核心功能**
// - Database：键值数据库句柄接口，工厂产出的统一类型
// - Iterator：惰性、可重启的全量扫描迭代器
// - Driver：外部后端驱动接口，支持注册表动态加载
//
// 🏧 **设计原则**
// - 引擎无关：调用方不感知句柄之下叠了多少层装饰器
// - 错误显式：所有失败通过error返回，不吞没任何错误
// - 资源安全：Close幂等，重复关闭是空操作而非错误
//
// 🔗 **组件关系**
// - Database：被区块、交易、索引等模块使用
// - 与Factory：由存储工厂根据配置产出
// - 与Driver：第三方后端通过Driver注册表接入
package storage

import "context"

//=============================================================================
// Database 接口定义
//=============================================================================

// Database 定义了键值数据库句柄的能力契约
// 工厂产出的每一个句柄（无论底层是哪个引擎、叠了多少装饰器）都满足本接口
type Database interface {
	//-------------------------------------------------------------------------
	// 生命周期管理
	//-------------------------------------------------------------------------

	// Open 打开数据库，获取底层引擎资源
	// 引擎级I/O或原生库错误时返回包装了ErrStorageUnavailable的错误
	// 关闭后重新打开是一次全新的资源获取，不复用内部状态
	Open() error

	// Close 关闭数据库并释放原生/文件资源
	// 幂等操作：关闭已关闭或从未打开的句柄是空操作，不返回错误
	Close() error

	// IsOpen 返回数据库当前是否处于打开状态
	IsOpen() bool

	// Name 返回数据库的逻辑名称（引擎表/命名空间标识）
	Name() string

	//-------------------------------------------------------------------------
	// 基本键值操作
	//-------------------------------------------------------------------------

	// Get 获取指定键的值
	// 键不存在时返回(nil, false, nil)；引擎失败时返回非nil错误
	Get(ctx context.Context, key []byte) ([]byte, bool, error)

	// Put 设置键值对
	// 如果键已存在，将覆盖原有值
	Put(ctx context.Context, key, value []byte) error

	// PutBatch 批量设置多个键值对
	// map的键为键的字符串表示，值为要设置的二进制数据
	PutBatch(ctx context.Context, entries map[string][]byte) error

	// Delete 删除指定键的值
	// 如果键不存在，不会返回错误
	Delete(ctx context.Context, key []byte) error

	// Commit 将所有缓冲中的写入刷入底层引擎
	// 对没有提交边界的后端是空操作
	Commit(ctx context.Context) error

	//-------------------------------------------------------------------------
	// 查询操作
	//-------------------------------------------------------------------------

	// IsEmpty 返回数据库是否不包含任何键值对
	IsEmpty(ctx context.Context) (bool, error)

	// Size 返回数据库中键值对的数量
	// 后端无法廉价统计数量时返回包装了ErrUnsupportedOperation的错误
	Size(ctx context.Context) (int64, error)

	// NewIterator 创建惰性的全量扫描迭代器
	// 迭代器可重启：每次调用产生一个从头开始的新序列
	NewIterator(ctx context.Context) (Iterator, error)
}

//=============================================================================
// Iterator 接口定义
//=============================================================================

// Iterator 定义了惰性键值对序列的迭代接口
// 使用方式遵循 for it.Next() { it.Key(); it.Value() } 模式，结束后必须Release
type Iterator interface {
	// Next 推进到下一个键值对，没有更多数据时返回false
	Next() bool

	// Key 返回当前键值对的键
	// 仅在Next返回true之后有效
	Key() []byte

	// Value 返回当前键值对的值
	// 仅在Next返回true之后有效
	Value() []byte

	// Error 返回迭代过程中发生的错误
	Error() error

	// Release 释放迭代器占用的资源
	// 可以安全地重复调用
	Release()
}

//=============================================================================
// Store 接口定义
//=============================================================================

// Store 定义了后端适配器的内部契约
// 在Database之上增加引擎静态属性，供工厂选择锁策略时查询
type Store interface {
	Database

	// SerializesWrites 返回底层引擎是否自带内部写序列化
	// 返回true的引擎（原生LSM引擎）由工厂选用后端感知锁变体，
	// 避免双重加锁开销；返回false的引擎使用通用读写锁
	SerializesWrites() bool

	// Path 返回数据库的文件系统根路径（内存mock返回空字符串）
	Path() string
}

//=============================================================================
// Driver 接口定义
//=============================================================================

// Driver 定义了动态加载的第三方后端驱动接口
// 驱动在进程启动时通过注册表以字符串标识注册，
// 工厂对无法识别的后端类型按驱动名称解析
type Driver interface {
	// Connect 根据完整配置产出一个数据库句柄
	// props为工厂收到的原始配置（字符串键值对）
	Connect(props map[string]string) (Database, error)
}
