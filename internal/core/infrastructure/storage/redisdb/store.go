// Package redisdb 提供基于Redis的存储实现
// 服务端后端：连接远程Redis实例，以键前缀划分逻辑命名空间
package redisdb

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	redisconfig "github.com/nexachain/v1/internal/config/storage/redis"
	log "github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// Store 实现基于Redis的键值数据库
// 所有键带有 "<name>:" 前缀，同一实例上的多个逻辑库互不干扰
type Store struct {
	config *redisconfig.Config
	logger log.Logger
	client *goredis.Client
}

// 确保实现接口
var _ storage.Store = (*Store)(nil)

// New 创建新的Redis存储实例
// 名称和地址必须非空，缺失时返回包装了ErrConfiguration的错误
func New(config *redisconfig.Config, logger log.Logger) (*Store, error) {
	if config.GetName() == "" || config.GetAddr() == "" {
		return nil, fmt.Errorf("redisdb 需要非空的名称和服务器地址: %w", storage.ErrConfiguration)
	}
	return &Store{config: config, logger: logger}, nil
}

// Open 建立连接池并探测服务器可达性
func (s *Store) Open() error {
	if s.client != nil {
		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        s.config.GetAddr(),
		PoolSize:    s.config.GetPoolSize(),
		DialTimeout: s.config.GetDialTimeout(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), s.config.GetDialTimeout())
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("无法连接Redis %s: %v: %w", s.config.GetAddr(), err, storage.ErrStorageUnavailable)
	}

	s.client = client
	if s.logger != nil {
		s.logger.Infof("Redis存储已连接，地址: %s，命名空间: %s", s.config.GetAddr(), s.Name())
	}
	return nil
}

// Close 关闭连接池
// 幂等操作：重复关闭是空操作
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	if err != nil {
		return fmt.Errorf("关闭Redis连接失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// IsOpen 返回连接是否处于打开状态
func (s *Store) IsOpen() bool { return s.client != nil }

// Name 返回逻辑名称
func (s *Store) Name() string { return s.config.GetName() }

// Path 服务端后端的"路径"即服务器地址
func (s *Store) Path() string { return s.config.GetAddr() }

// SerializesWrites 连接的打开/关闭没有引擎级保护，
// 交由通用锁装饰器统一串行化
func (s *Store) SerializesWrites() bool { return false }

// Get 获取指定键的值
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	if s.client == nil {
		return nil, false, fmt.Errorf("redisdb %s: %w", s.Name(), storage.ErrClosed)
	}
	val, err := s.client.Get(ctx, s.namespaced(key)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis获取键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return val, true, nil
}

// Put 设置键值对
func (s *Store) Put(ctx context.Context, key, value []byte) error {
	if s.client == nil {
		return fmt.Errorf("redisdb %s: %w", s.Name(), storage.ErrClosed)
	}
	if err := s.client.Set(ctx, s.namespaced(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis写入键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// PutBatch 批量设置多个键值对（流水线提交减少往返）
func (s *Store) PutBatch(ctx context.Context, entries map[string][]byte) error {
	if s.client == nil {
		return fmt.Errorf("redisdb %s: %w", s.Name(), storage.ErrClosed)
	}
	pipe := s.client.Pipeline()
	for k, v := range entries {
		pipe.Set(ctx, s.namespaced([]byte(k)), v, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis批量写入失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	if s.client == nil {
		return fmt.Errorf("redisdb %s: %w", s.Name(), storage.ErrClosed)
	}
	if err := s.client.Del(ctx, s.namespaced(key)).Err(); err != nil {
		return fmt.Errorf("redis删除键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// Commit 每条命令在服务端即时生效，没有额外的提交边界
func (s *Store) Commit(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("redisdb %s: %w", s.Name(), storage.ErrClosed)
	}
	return nil
}

// IsEmpty 返回命名空间内是否没有任何键
// 通过SCAN探测第一个键，无需遍历全量
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	if s.client == nil {
		return false, fmt.Errorf("redisdb %s: %w", s.Name(), storage.ErrClosed)
	}
	iter := s.client.Scan(ctx, 0, s.prefix()+"*", 1).Iterator()
	if iter.Next(ctx) {
		return false, nil
	}
	if err := iter.Err(); err != nil {
		return false, fmt.Errorf("redis扫描失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return true, nil
}

// Size 服务端没有按前缀计数的廉价途径，统计不受支持
func (s *Store) Size(ctx context.Context) (int64, error) {
	if s.client == nil {
		return 0, fmt.Errorf("redisdb %s: %w", s.Name(), storage.ErrClosed)
	}
	return 0, fmt.Errorf("redisdb %s 不支持键数量统计: %w", s.Name(), storage.ErrUnsupportedOperation)
}

// NewIterator 创建全量扫描迭代器（SCAN游标，逐键取值）
func (s *Store) NewIterator(ctx context.Context) (storage.Iterator, error) {
	if s.client == nil {
		return nil, fmt.Errorf("redisdb %s: %w", s.Name(), storage.ErrClosed)
	}
	scan := s.client.Scan(ctx, 0, s.prefix()+"*", s.config.GetScanCount()).Iterator()
	return &iterator{ctx: ctx, client: s.client, scan: scan, prefix: s.prefix()}, nil
}

// iterator 包装SCAN游标
// SCAN只返回键，Value在Next中按键取回；
// 扫描期间被删除的键跳过，不视为错误
type iterator struct {
	ctx    context.Context
	client *goredis.Client
	scan   *goredis.ScanIterator
	prefix string
	key    []byte
	value  []byte
	err    error
}

func (w *iterator) Next() bool {
	if w.err != nil {
		return false
	}
	for w.scan.Next(w.ctx) {
		full := w.scan.Val()
		val, err := w.client.Get(w.ctx, full).Bytes()
		if err == goredis.Nil {
			continue
		}
		if err != nil {
			w.err = fmt.Errorf("redis迭代取值失败: %v: %w", err, storage.ErrOperationFailed)
			return false
		}
		w.key = []byte(strings.TrimPrefix(full, w.prefix))
		w.value = val
		return true
	}
	if err := w.scan.Err(); err != nil {
		w.err = fmt.Errorf("redis扫描失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return false
}

func (w *iterator) Key() []byte { return w.key }

func (w *iterator) Value() []byte { return w.value }

func (w *iterator) Error() error { return w.err }

func (w *iterator) Release() {}

// prefix 返回键命名空间前缀
func (s *Store) prefix() string { return s.config.GetName() + ":" }

// namespaced 为键附加命名空间前缀
func (s *Store) namespaced(key []byte) string { return s.prefix() + string(key) }
