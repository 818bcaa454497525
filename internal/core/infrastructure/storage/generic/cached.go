// Package generic 提供与后端无关的数据库装饰器
// 缓存、加锁和计时能力以组合方式叠加在任意存储实现之上
package generic

import (
	"context"
	"fmt"

	log "github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// entry 待落盘的变更记录
// deleted为true表示删除标记，落盘时转换为删除操作
type entry struct {
	value   []byte
	deleted bool
}

// CachedDatabase 堆缓存装饰器
// 写操作先记录在内存变更集中，在提交边界批量落盘；
// 读操作优先命中变更集，保证写后读一致。
// 本装饰器自身不做并发保护，由外层锁装饰器统一串行化
type CachedDatabase struct {
	inner  storage.Database
	logger log.Logger

	autoCommit   bool
	maxSize      int
	statsEnabled bool

	dirty  map[string]entry
	hits   uint64
	misses uint64
}

// 确保实现接口
var _ storage.Database = (*CachedDatabase)(nil)

// NewCached 创建堆缓存装饰器
// autoCommit为true时每次写操作立即落盘；
// maxSize是变更集的最大待落盘条目数，达到即触发落盘
func NewCached(inner storage.Database, logger log.Logger, autoCommit bool, maxSize int, statsEnabled bool) *CachedDatabase {
	return &CachedDatabase{
		inner:        inner,
		logger:       logger,
		autoCommit:   autoCommit,
		maxSize:      maxSize,
		statsEnabled: statsEnabled,
		dirty:        make(map[string]entry),
	}
}

// Open 打开底层数据库
func (c *CachedDatabase) Open() error { return c.inner.Open() }

// Close 落盘全部待提交变更后关闭底层数据库
func (c *CachedDatabase) Close() error {
	if c.inner.IsOpen() {
		if err := c.flush(context.Background()); err != nil {
			return err
		}
	}
	return c.inner.Close()
}

// IsOpen 返回底层数据库是否处于打开状态
func (c *CachedDatabase) IsOpen() bool { return c.inner.IsOpen() }

// Name 返回底层数据库的逻辑名称
func (c *CachedDatabase) Name() string { return c.inner.Name() }

// Get 获取指定键的值，优先命中变更集
func (c *CachedDatabase) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	if e, ok := c.dirty[string(key)]; ok {
		c.recordLookup(true)
		if e.deleted {
			return nil, false, nil
		}
		out := make([]byte, len(e.value))
		copy(out, e.value)
		return out, true, nil
	}
	c.recordLookup(false)
	return c.inner.Get(ctx, key)
}

// Put 设置键值对
func (c *CachedDatabase) Put(ctx context.Context, key, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	c.dirty[string(key)] = entry{value: v}
	return c.maybeFlush(ctx)
}

// PutBatch 批量设置多个键值对
func (c *CachedDatabase) PutBatch(ctx context.Context, entries map[string][]byte) error {
	for k, val := range entries {
		v := make([]byte, len(val))
		copy(v, val)
		c.dirty[k] = entry{value: v}
	}
	return c.maybeFlush(ctx)
}

// Delete 删除指定键的值（记录删除标记）
func (c *CachedDatabase) Delete(ctx context.Context, key []byte) error {
	c.dirty[string(key)] = entry{deleted: true}
	return c.maybeFlush(ctx)
}

// Commit 落盘全部待提交变更并传递提交边界
func (c *CachedDatabase) Commit(ctx context.Context) error {
	if err := c.flush(ctx); err != nil {
		return err
	}
	return c.inner.Commit(ctx)
}

// IsEmpty 落盘后查询底层数据库是否为空
func (c *CachedDatabase) IsEmpty(ctx context.Context) (bool, error) {
	if err := c.flush(ctx); err != nil {
		return false, err
	}
	return c.inner.IsEmpty(ctx)
}

// Size 落盘后查询底层数据库的键数量
func (c *CachedDatabase) Size(ctx context.Context) (int64, error) {
	if err := c.flush(ctx); err != nil {
		return 0, err
	}
	return c.inner.Size(ctx)
}

// NewIterator 落盘后创建底层迭代器，保证遍历覆盖全部已写数据
func (c *CachedDatabase) NewIterator(ctx context.Context) (storage.Iterator, error) {
	if err := c.flush(ctx); err != nil {
		return nil, err
	}
	return c.inner.NewIterator(ctx)
}

// CacheStats 返回累计命中与未命中次数
func (c *CachedDatabase) CacheStats() (hits, misses uint64) {
	return c.hits, c.misses
}

// maybeFlush 按提交策略决定是否立即落盘
func (c *CachedDatabase) maybeFlush(ctx context.Context) error {
	if c.autoCommit || len(c.dirty) >= c.maxSize {
		return c.flush(ctx)
	}
	return nil
}

// flush 将变更集落盘：写入批量提交，删除逐键执行
func (c *CachedDatabase) flush(ctx context.Context) error {
	if len(c.dirty) == 0 {
		return nil
	}

	puts := make(map[string][]byte)
	var deletes []string
	for k, e := range c.dirty {
		if e.deleted {
			deletes = append(deletes, k)
		} else {
			puts[k] = e.value
		}
	}

	if len(puts) > 0 {
		if err := c.inner.PutBatch(ctx, puts); err != nil {
			return fmt.Errorf("缓存落盘写入失败: %w", err)
		}
	}
	for _, k := range deletes {
		if err := c.inner.Delete(ctx, []byte(k)); err != nil {
			return fmt.Errorf("缓存落盘删除失败: %w", err)
		}
	}

	if c.logger != nil {
		c.logger.Debugf("数据库 %s 落盘完成，写入 %d 条，删除 %d 条", c.Name(), len(puts), len(deletes))
	}
	c.dirty = make(map[string]entry)
	return nil
}

// recordLookup 记录一次缓存查询结果
func (c *CachedDatabase) recordLookup(hit bool) {
	if !c.statsEnabled {
		return
	}
	if hit {
		c.hits++
		cacheLookups.WithLabelValues(c.Name(), "hit").Inc()
	} else {
		c.misses++
		cacheLookups.WithLabelValues(c.Name(), "miss").Inc()
	}
}
