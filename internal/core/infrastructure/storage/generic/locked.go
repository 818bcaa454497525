package generic

import (
	"context"
	"sync"

	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// LockedDatabase 读写锁装饰器
// 写操作和状态切换持排他锁，读操作持共享锁，
// 使任意存储实现可以安全地被多协程访问
type LockedDatabase struct {
	inner storage.Database
	mu    sync.RWMutex
}

// 确保实现接口
var _ storage.Database = (*LockedDatabase)(nil)

// NewLocked 创建读写锁装饰器
func NewLocked(inner storage.Database) *LockedDatabase {
	return &LockedDatabase{inner: inner}
}

// Open 打开底层数据库（排他）
func (l *LockedDatabase) Open() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Open()
}

// Close 关闭底层数据库（排他）
func (l *LockedDatabase) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Close()
}

// IsOpen 返回底层数据库是否处于打开状态（共享）
func (l *LockedDatabase) IsOpen() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.IsOpen()
}

// Name 逻辑名称不可变，无需加锁
func (l *LockedDatabase) Name() string { return l.inner.Name() }

// Get 获取指定键的值（共享）
func (l *LockedDatabase) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.Get(ctx, key)
}

// Put 设置键值对（排他）
func (l *LockedDatabase) Put(ctx context.Context, key, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Put(ctx, key, value)
}

// PutBatch 批量设置多个键值对（排他）
func (l *LockedDatabase) PutBatch(ctx context.Context, entries map[string][]byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.PutBatch(ctx, entries)
}

// Delete 删除指定键的值（排他）
func (l *LockedDatabase) Delete(ctx context.Context, key []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Delete(ctx, key)
}

// Commit 提交待落盘变更（排他）
func (l *LockedDatabase) Commit(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Commit(ctx)
}

// IsEmpty 返回数据库是否为空（共享）
func (l *LockedDatabase) IsEmpty(ctx context.Context) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.IsEmpty(ctx)
}

// Size 返回数据库键数量（共享）
func (l *LockedDatabase) Size(ctx context.Context) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.Size(ctx)
}

// NewIterator 创建迭代器（共享）
// 返回的迭代器本身不受锁保护，调用方负责在迭代期间避免并发写
func (l *LockedDatabase) NewIterator(ctx context.Context) (storage.Iterator, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.NewIterator(ctx)
}

// SpecialLockedDatabase 面向自带写串行化引擎的锁装饰器
// LSM引擎在内部串行化写入，外层再持排他写锁只会损失吞吐；
// 这里仅在打开/关闭时持排他锁，其余操作持共享锁，
// 保证状态切换不会与进行中的读写交错
type SpecialLockedDatabase struct {
	inner storage.Database
	mu    sync.RWMutex
}

// 确保实现接口
var _ storage.Database = (*SpecialLockedDatabase)(nil)

// NewSpecialLocked 创建面向写串行化引擎的锁装饰器
func NewSpecialLocked(inner storage.Database) *SpecialLockedDatabase {
	return &SpecialLockedDatabase{inner: inner}
}

// Open 打开底层数据库（排他）
func (l *SpecialLockedDatabase) Open() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Open()
}

// Close 关闭底层数据库（排他）
func (l *SpecialLockedDatabase) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Close()
}

// IsOpen 返回底层数据库是否处于打开状态（共享）
func (l *SpecialLockedDatabase) IsOpen() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.IsOpen()
}

// Name 逻辑名称不可变，无需加锁
func (l *SpecialLockedDatabase) Name() string { return l.inner.Name() }

// Get 获取指定键的值（共享）
func (l *SpecialLockedDatabase) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.Get(ctx, key)
}

// Put 设置键值对（共享，引擎内部串行化）
func (l *SpecialLockedDatabase) Put(ctx context.Context, key, value []byte) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.Put(ctx, key, value)
}

// PutBatch 批量设置多个键值对（排他，保持复合写入的原子观察顺序）
func (l *SpecialLockedDatabase) PutBatch(ctx context.Context, entries map[string][]byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.PutBatch(ctx, entries)
}

// Delete 删除指定键的值（共享，引擎内部串行化）
func (l *SpecialLockedDatabase) Delete(ctx context.Context, key []byte) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.Delete(ctx, key)
}

// Commit 提交待落盘变更（共享，引擎内部串行化）
func (l *SpecialLockedDatabase) Commit(ctx context.Context) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.Commit(ctx)
}

// IsEmpty 返回数据库是否为空（共享）
func (l *SpecialLockedDatabase) IsEmpty(ctx context.Context) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.IsEmpty(ctx)
}

// Size 返回数据库键数量（共享）
func (l *SpecialLockedDatabase) Size(ctx context.Context) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.Size(ctx)
}

// NewIterator 创建迭代器（共享）
func (l *SpecialLockedDatabase) NewIterator(ctx context.Context) (storage.Iterator, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.NewIterator(ctx)
}
