// Package mockdb 提供基于内存映射的mock存储实现
//
// 两个变体：
// - Store：纯内存，关闭后数据全部丢弃，用于测试和显式选择的临时场景
// - PersistentStore：内存持有数据，仅在关闭时整体落盘，打开时整体重载
//
// ⚠️ 两个变体均不提供任何并发安全保障，
// 无同步的并发访问是未定义行为，调用方必须通过配置启用锁装饰器规避
package mockdb

import (
	"context"
	"fmt"

	log "github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// Store 实现纯内存的mock数据库
// 不需要名称/路径校验，关闭即丢弃全部数据
type Store struct {
	name   string
	logger log.Logger
	data   map[string][]byte // nil表示关闭状态
}

// 确保实现接口
var _ storage.Store = (*Store)(nil)

// New 创建新的内存mock存储实例
func New(name string, logger log.Logger) *Store {
	return &Store{
		name:   name,
		logger: logger,
	}
}

// Open 打开数据库（分配全新的内存表）
func (s *Store) Open() error {
	if s.data != nil {
		return nil
	}
	s.data = make(map[string][]byte)
	if s.logger != nil {
		s.logger.Debugf("内存mock数据库已打开: %s", s.name)
	}
	return nil
}

// Close 关闭数据库并丢弃全部数据
// 幂等操作：重复关闭是空操作
func (s *Store) Close() error {
	s.data = nil
	return nil
}

// IsOpen 返回数据库是否处于打开状态
func (s *Store) IsOpen() bool { return s.data != nil }

// Name 返回逻辑名称
func (s *Store) Name() string { return s.name }

// Path 返回文件系统路径（内存mock没有路径）
func (s *Store) Path() string { return "" }

// SerializesWrites 内存映射不提供任何内部写序列化
func (s *Store) SerializesWrites() bool { return false }

// Get 获取指定键的值
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	if s.data == nil {
		return nil, false, fmt.Errorf("mockdb %s: %w", s.name, storage.ErrClosed)
	}
	v, ok := s.data[string(key)]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Put 设置键值对
func (s *Store) Put(ctx context.Context, key, value []byte) error {
	if s.data == nil {
		return fmt.Errorf("mockdb %s: %w", s.name, storage.ErrClosed)
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.data[string(key)] = v
	return nil
}

// PutBatch 批量设置多个键值对
func (s *Store) PutBatch(ctx context.Context, entries map[string][]byte) error {
	if s.data == nil {
		return fmt.Errorf("mockdb %s: %w", s.name, storage.ErrClosed)
	}
	for k, value := range entries {
		v := make([]byte, len(value))
		copy(v, value)
		s.data[k] = v
	}
	return nil
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	if s.data == nil {
		return fmt.Errorf("mockdb %s: %w", s.name, storage.ErrClosed)
	}
	delete(s.data, string(key))
	return nil
}

// Commit 内存映射没有提交边界，空操作
func (s *Store) Commit(ctx context.Context) error {
	if s.data == nil {
		return fmt.Errorf("mockdb %s: %w", s.name, storage.ErrClosed)
	}
	return nil
}

// IsEmpty 返回数据库是否为空
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	if s.data == nil {
		return false, fmt.Errorf("mockdb %s: %w", s.name, storage.ErrClosed)
	}
	return len(s.data) == 0, nil
}

// Size 返回键值对数量（内存映射统计数量是廉价操作）
func (s *Store) Size(ctx context.Context) (int64, error) {
	if s.data == nil {
		return 0, fmt.Errorf("mockdb %s: %w", s.name, storage.ErrClosed)
	}
	return int64(len(s.data)), nil
}

// NewIterator 创建全量扫描迭代器
// 迭代基于创建时的键快照，之后的写入不影响本次迭代
func (s *Store) NewIterator(ctx context.Context) (storage.Iterator, error) {
	if s.data == nil {
		return nil, fmt.Errorf("mockdb %s: %w", s.name, storage.ErrClosed)
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return &iterator{store: s, keys: keys, pos: -1}, nil
}

// iterator 内存mock迭代器
type iterator struct {
	store *Store
	keys  []string
	pos   int
	value []byte
}

func (it *iterator) Next() bool {
	for it.pos+1 < len(it.keys) {
		it.pos++
		// 快照后被删除的键直接跳过
		if v, ok := it.store.data[it.keys[it.pos]]; ok {
			it.value = v
			return true
		}
	}
	return false
}

func (it *iterator) Key() []byte {
	if it.pos < 0 || it.pos >= len(it.keys) {
		return nil
	}
	return []byte(it.keys[it.pos])
}

func (it *iterator) Value() []byte {
	out := make([]byte, len(it.value))
	copy(out, it.value)
	return out
}

func (it *iterator) Error() error { return nil }

func (it *iterator) Release() {}
