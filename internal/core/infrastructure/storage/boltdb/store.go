// Package boltdb 提供基于bbolt的存储实现
// bbolt是嵌入式B+树引擎，每个逻辑名称对应一个桶
package boltdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	bbolt "go.etcd.io/bbolt"

	boltconfig "github.com/nexachain/v1/internal/config/storage/bolt"
	log "github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// Store 实现基于bbolt的键值数据库
type Store struct {
	config *boltconfig.Config
	logger log.Logger
	db     *bbolt.DB
}

// 确保实现接口
var _ storage.Store = (*Store)(nil)

// New 创建新的Bolt存储实例
// 名称和路径必须非空，缺失时返回包装了ErrConfiguration的错误
func New(config *boltconfig.Config, logger log.Logger) (*Store, error) {
	if config.GetName() == "" || config.GetPath() == "" {
		return nil, fmt.Errorf("boltdb 需要非空的名称和路径: %w", storage.ErrConfiguration)
	}
	return &Store{config: config, logger: logger}, nil
}

// Open 打开数据库并确保逻辑桶存在
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(s.config.GetPath(), 0700); err != nil {
		return fmt.Errorf("无法创建Bolt数据目录 %s: %v: %w", s.config.GetPath(), err, storage.ErrStorageUnavailable)
	}

	opts := &bbolt.Options{Timeout: s.config.GetOpenTimeout()}
	if s.config.IsCacheEnabled() {
		opts.InitialMmapSize = s.config.GetInitialMmapSize()
	}

	db, err := bbolt.Open(s.dataFile(), boltconfig.DefaultFileMode, opts)
	if err != nil {
		return fmt.Errorf("无法打开Bolt %s: %v: %w", s.dataFile(), err, storage.ErrStorageUnavailable)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket())
		return err
	})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("无法创建Bolt桶 %s: %v: %w", s.Name(), err, storage.ErrStorageUnavailable)
	}

	s.db = db
	if s.logger != nil {
		s.logger.Infof("Bolt存储已打开，数据文件: %s", s.dataFile())
	}
	return nil
}

// Close 关闭数据库并释放文件锁
// 幂等操作：重复关闭是空操作
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("关闭Bolt失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// IsOpen 返回数据库是否处于打开状态
func (s *Store) IsOpen() bool { return s.db != nil }

// Name 返回逻辑名称
func (s *Store) Name() string { return s.config.GetName() }

// Path 返回数据库根路径
func (s *Store) Path() string { return s.config.GetPath() }

// SerializesWrites Bolt的打开/关闭状态切换没有引擎级保护，
// 交由通用锁装饰器统一串行化
func (s *Store) SerializesWrites() bool { return false }

// Get 获取指定键的值
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, fmt.Errorf("boltdb %s: %w", s.Name(), storage.ErrClosed)
	}
	var out []byte
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket()).Get(key)
		if v != nil {
			found = true
			out = make([]byte, len(v))
			copy(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("bolt获取键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return out, found, nil
}

// Put 设置键值对
func (s *Store) Put(ctx context.Context, key, value []byte) error {
	if s.db == nil {
		return fmt.Errorf("boltdb %s: %w", s.Name(), storage.ErrClosed)
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket()).Put(key, value)
	})
	if err != nil {
		return fmt.Errorf("bolt写入键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// PutBatch 批量设置多个键值对（单个事务原子提交）
func (s *Store) PutBatch(ctx context.Context, entries map[string][]byte) error {
	if s.db == nil {
		return fmt.Errorf("boltdb %s: %w", s.Name(), storage.ErrClosed)
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket())
		for k, v := range entries {
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bolt批量写入失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	if s.db == nil {
		return fmt.Errorf("boltdb %s: %w", s.Name(), storage.ErrClosed)
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket()).Delete(key)
	})
	if err != nil {
		return fmt.Errorf("bolt删除键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// Commit Bolt的写事务在Update返回时已提交，没有额外的提交边界
func (s *Store) Commit(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("boltdb %s: %w", s.Name(), storage.ErrClosed)
	}
	return nil
}

// IsEmpty 返回数据库是否为空
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	size, err := s.Size(ctx)
	if err != nil {
		return false, err
	}
	return size == 0, nil
}

// Size B+树的桶统计信息维护键数量，统计是廉价操作
func (s *Store) Size(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("boltdb %s: %w", s.Name(), storage.ErrClosed)
	}
	var count int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = int64(tx.Bucket(s.bucket()).Stats().KeyN)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("bolt统计失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return count, nil
}

// NewIterator 创建全量扫描迭代器
// 迭代器持有一个只读事务，Release时回滚释放
func (s *Store) NewIterator(ctx context.Context) (storage.Iterator, error) {
	if s.db == nil {
		return nil, fmt.Errorf("boltdb %s: %w", s.Name(), storage.ErrClosed)
	}
	tx, err := s.db.Begin(false)
	if err != nil {
		return nil, fmt.Errorf("bolt创建迭代器失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return &iterator{tx: tx, cursor: tx.Bucket(s.bucket()).Cursor()}, nil
}

// iterator 包装Bolt游标
// Bolt返回的切片仅在事务内有效，Key/Value必须复制
type iterator struct {
	tx      *bbolt.Tx
	cursor  *bbolt.Cursor
	started bool
	key     []byte
	value   []byte
}

func (w *iterator) Next() bool {
	if w.cursor == nil {
		return false
	}
	var k, v []byte
	if !w.started {
		w.started = true
		k, v = w.cursor.First()
	} else {
		k, v = w.cursor.Next()
	}
	if k == nil {
		return false
	}
	w.key = make([]byte, len(k))
	copy(w.key, k)
	w.value = make([]byte, len(v))
	copy(w.value, v)
	return true
}

func (w *iterator) Key() []byte { return w.key }

func (w *iterator) Value() []byte { return w.value }

func (w *iterator) Error() error { return nil }

func (w *iterator) Release() {
	if w.tx != nil {
		_ = w.tx.Rollback()
		w.tx = nil
		w.cursor = nil
	}
}

// bucket 返回逻辑桶名
func (s *Store) bucket() []byte { return []byte(s.config.GetName()) }

// dataFile 返回数据库文件路径：<path>/<name>.db
func (s *Store) dataFile() string {
	return filepath.Join(s.config.GetPath(), s.config.GetName()+".db")
}
