// Package badgerdb 提供基于BadgerDB的存储实现
package badgerdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v3"
	badgeroptions "github.com/dgraph-io/badger/v3/options"

	badgerconfig "github.com/nexachain/v1/internal/config/storage/badger"
	log "github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// Store 实现基于BadgerDB的键值数据库
type Store struct {
	config *badgerconfig.Config
	logger log.Logger
	db     *badger.DB
}

// 确保实现接口
var _ storage.Store = (*Store)(nil)

// New 创建新的BadgerDB存储实例
// 名称和路径必须非空，缺失时返回包装了ErrConfiguration的错误
func New(config *badgerconfig.Config, logger log.Logger) (*Store, error) {
	if config.GetName() == "" || config.GetPath() == "" {
		return nil, fmt.Errorf("badgerdb 需要非空的名称和路径: %w", storage.ErrConfiguration)
	}
	return &Store{config: config, logger: logger}, nil
}

// Open 打开数据库
// 把缓存/压缩/调优配置翻译为BadgerDB原生选项
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}

	dataDir := s.dataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("无法创建BadgerDB数据目录 %s: %v: %w", dataDir, err, storage.ErrStorageUnavailable)
	}

	opts := badger.DefaultOptions(dataDir)
	opts.SyncWrites = s.config.IsSyncWritesEnabled()
	opts.MemTableSize = s.config.GetMemTableSize()
	opts.BlockSize = s.config.GetBlockSize()
	opts.NumMemtables = 2
	opts.NumCompactors = 2
	opts.ValueLogFileSize = badgerconfig.DefaultValueLogFileSize
	opts.Logger = newBadgerLogger(s.logger)

	if s.config.IsCacheEnabled() {
		opts.BlockCacheSize = s.config.GetCacheSize()
		opts.IndexCacheSize = s.config.GetCacheSize()
	} else {
		// 压缩/加密关闭时BadgerDB允许零块缓存
		opts.BlockCacheSize = 0
		opts.IndexCacheSize = 0
	}

	if s.config.IsCompressionEnabled() {
		opts.Compression = badgeroptions.Snappy
	} else {
		opts.Compression = badgeroptions.None
	}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("无法打开BadgerDB %s: %v: %w", dataDir, err, storage.ErrStorageUnavailable)
	}

	s.db = db
	if s.logger != nil {
		s.logger.Infof("BadgerDB存储已打开，数据目录: %s", dataDir)
	}
	return nil
}

// Close 关闭数据库并释放资源
// 幂等操作：重复关闭是空操作
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("关闭BadgerDB失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// IsOpen 返回数据库是否处于打开状态
func (s *Store) IsOpen() bool { return s.db != nil }

// Name 返回逻辑名称
func (s *Store) Name() string { return s.config.GetName() }

// Path 返回数据库根路径
func (s *Store) Path() string { return s.config.GetPath() }

// SerializesWrites BadgerDB原生层内部序列化写入
func (s *Store) SerializesWrites() bool { return true }

// Get 获取指定键的值
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, fmt.Errorf("badgerdb %s: %w", s.Name(), storage.ErrClosed)
	}
	var valCopy []byte
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("badger获取键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return valCopy, found, nil
}

// Put 设置键值对
func (s *Store) Put(ctx context.Context, key, value []byte) error {
	if s.db == nil {
		return fmt.Errorf("badgerdb %s: %w", s.Name(), storage.ErrClosed)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("badger写入键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// PutBatch 批量设置多个键值对（单个事务原子提交）
func (s *Store) PutBatch(ctx context.Context, entries map[string][]byte) error {
	if s.db == nil {
		return fmt.Errorf("badgerdb %s: %w", s.Name(), storage.ErrClosed)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		for k, v := range entries {
			if err := txn.Set([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger批量写入失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	if s.db == nil {
		return fmt.Errorf("badgerdb %s: %w", s.Name(), storage.ErrClosed)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("badger删除键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// Commit BadgerDB的写事务在Update返回时已提交，没有额外的提交边界
func (s *Store) Commit(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("badgerdb %s: %w", s.Name(), storage.ErrClosed)
	}
	return nil
}

// IsEmpty 返回数据库是否为空
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("badgerdb %s: %w", s.Name(), storage.ErrClosed)
	}
	empty := true
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		it.Rewind()
		empty = !it.Valid()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("badger扫描失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return empty, nil
}

// Size LSM树无法廉价统计键数量
func (s *Store) Size(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("badgerdb %s: %w", s.Name(), storage.ErrClosed)
	}
	return 0, fmt.Errorf("badgerdb不支持廉价的数量统计: %w", storage.ErrUnsupportedOperation)
}

// NewIterator 创建全量扫描迭代器
// 迭代器持有一个只读事务，Release时一并释放
func (s *Store) NewIterator(ctx context.Context) (storage.Iterator, error) {
	if s.db == nil {
		return nil, fmt.Errorf("badgerdb %s: %w", s.Name(), storage.ErrClosed)
	}
	txn := s.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	return &iterator{txn: txn, it: it}, nil
}

// iterator 包装BadgerDB迭代器
type iterator struct {
	txn     *badger.Txn
	it      *badger.Iterator
	started bool
	err     error
	value   []byte
}

func (w *iterator) Next() bool {
	if w.it == nil {
		return false
	}
	if !w.started {
		w.started = true
		w.it.Rewind()
	} else {
		w.it.Next()
	}
	if !w.it.Valid() {
		return false
	}
	v, err := w.it.Item().ValueCopy(nil)
	if err != nil {
		w.err = err
		return false
	}
	w.value = v
	return true
}

func (w *iterator) Key() []byte {
	if w.it == nil || !w.it.Valid() {
		return nil
	}
	return w.it.Item().KeyCopy(nil)
}

func (w *iterator) Value() []byte { return w.value }

func (w *iterator) Error() error { return w.err }

func (w *iterator) Release() {
	if w.it != nil {
		w.it.Close()
		w.it = nil
	}
	if w.txn != nil {
		w.txn.Discard()
		w.txn = nil
	}
}

// dataDir 返回实际的数据目录：<path>/<name>
func (s *Store) dataDir() string {
	return filepath.Join(s.config.GetPath(), s.config.GetName())
}

// badgerLogger 实现BadgerDB的日志接口
type badgerLogger struct {
	logger log.Logger
}

// newBadgerLogger 创建BadgerDB日志适配器
func newBadgerLogger(logger log.Logger) *badgerLogger {
	return &badgerLogger{logger: logger}
}

// Errorf 输出错误日志
func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Errorf("[BadgerDB] "+format, args...)
	}
}

// Warningf 输出警告日志
func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Warnf("[BadgerDB] "+format, args...)
	}
}

// Infof 输出信息日志
func (l *badgerLogger) Infof(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Infof("[BadgerDB] "+format, args...)
	}
}

// Debugf 输出调试日志
func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Debugf("[BadgerDB] "+format, args...)
	}
}
