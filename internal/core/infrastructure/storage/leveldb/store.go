// Package leveldb 提供基于goleveldb的存储实现
package leveldb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ldb "github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	ldbiter "github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"

	leveldbconfig "github.com/nexachain/v1/internal/config/storage/leveldb"
	log "github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// Store 实现基于goleveldb的键值数据库
type Store struct {
	config *leveldbconfig.Config
	logger log.Logger
	db     *ldb.DB
}

// 确保实现接口
var _ storage.Store = (*Store)(nil)

// New 创建新的LevelDB存储实例
// 名称和路径必须非空，缺失时返回包装了ErrConfiguration的错误
func New(config *leveldbconfig.Config, logger log.Logger) (*Store, error) {
	if config.GetName() == "" || config.GetPath() == "" {
		return nil, fmt.Errorf("leveldb 需要非空的名称和路径: %w", storage.ErrConfiguration)
	}
	return &Store{config: config, logger: logger}, nil
}

// Open 打开数据库
// 把缓存/压缩/调优配置翻译为goleveldb原生选项；
// 检测到数据损坏时尝试一次自动恢复（与节点自愈策略保持一致）
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}

	dataDir := s.dataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("无法创建LevelDB数据目录 %s: %v: %w", dataDir, err, storage.ErrStorageUnavailable)
	}

	opts := &opt.Options{
		OpenFilesCacheCapacity: s.config.GetMaxOpenFiles(),
		BlockSize:              s.config.GetBlockSize(),
		WriteBuffer:            s.config.GetWriteBufferSize(),
		Filter:                 filter.NewBloomFilter(10),
	}

	if s.config.IsCacheEnabled() {
		opts.BlockCacheCapacity = s.config.GetCacheSize()
	} else {
		opts.DisableBlockCache = true
	}

	if s.config.IsCompressionEnabled() {
		opts.Compression = opt.SnappyCompression
	} else {
		opts.Compression = opt.NoCompression
	}

	db, err := ldb.OpenFile(dataDir, opts)
	if ldberrors.IsCorrupted(err) {
		// 上次未正常关闭可能留下损坏的manifest，先尝试自动恢复
		if s.logger != nil {
			s.logger.Warnf("LevelDB数据损坏，尝试自动恢复: %v", err)
		}
		db, err = ldb.RecoverFile(dataDir, opts)
	}
	if err != nil {
		return fmt.Errorf("无法打开LevelDB %s: %v: %w", dataDir, err, storage.ErrStorageUnavailable)
	}

	s.db = db
	if s.logger != nil {
		s.logger.Infof("LevelDB存储已打开，数据目录: %s", dataDir)
	}
	return nil
}

// Close 关闭数据库并释放文件资源
// 幂等操作：重复关闭是空操作
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("关闭LevelDB失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// IsOpen 返回数据库是否处于打开状态
func (s *Store) IsOpen() bool { return s.db != nil }

// Name 返回逻辑名称
func (s *Store) Name() string { return s.config.GetName() }

// Path 返回数据库根路径
func (s *Store) Path() string { return s.config.GetPath() }

// SerializesWrites LevelDB原生层内部序列化写入
func (s *Store) SerializesWrites() bool { return true }

// Get 获取指定键的值
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, fmt.Errorf("leveldb %s: %w", s.Name(), storage.ErrClosed)
	}
	value, err := s.db.Get(key, nil)
	if err == ldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("leveldb获取键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return value, true, nil
}

// Put 设置键值对
func (s *Store) Put(ctx context.Context, key, value []byte) error {
	if s.db == nil {
		return fmt.Errorf("leveldb %s: %w", s.Name(), storage.ErrClosed)
	}
	if err := s.db.Put(key, value, nil); err != nil {
		return fmt.Errorf("leveldb写入键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// PutBatch 批量设置多个键值对（单个原生批次原子提交）
func (s *Store) PutBatch(ctx context.Context, entries map[string][]byte) error {
	if s.db == nil {
		return fmt.Errorf("leveldb %s: %w", s.Name(), storage.ErrClosed)
	}
	batch := new(ldb.Batch)
	for k, v := range entries {
		batch.Put([]byte(k), v)
	}
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("leveldb批量写入失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	if s.db == nil {
		return fmt.Errorf("leveldb %s: %w", s.Name(), storage.ErrClosed)
	}
	if err := s.db.Delete(key, nil); err != nil {
		return fmt.Errorf("leveldb删除键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// Commit LevelDB的写入即时落盘，没有额外的提交边界
func (s *Store) Commit(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("leveldb %s: %w", s.Name(), storage.ErrClosed)
	}
	return nil
}

// IsEmpty 返回数据库是否为空
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("leveldb %s: %w", s.Name(), storage.ErrClosed)
	}
	it := s.db.NewIterator(nil, nil)
	defer it.Release()
	if it.Next() {
		return false, nil
	}
	if err := it.Error(); err != nil {
		return false, fmt.Errorf("leveldb扫描失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return true, nil
}

// Size LSM树无法廉价统计键数量
func (s *Store) Size(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("leveldb %s: %w", s.Name(), storage.ErrClosed)
	}
	return 0, fmt.Errorf("leveldb不支持廉价的数量统计: %w", storage.ErrUnsupportedOperation)
}

// NewIterator 创建全量扫描迭代器
func (s *Store) NewIterator(ctx context.Context) (storage.Iterator, error) {
	if s.db == nil {
		return nil, fmt.Errorf("leveldb %s: %w", s.Name(), storage.ErrClosed)
	}
	return &iterator{it: s.db.NewIterator(nil, nil)}, nil
}

// iterator 包装goleveldb迭代器
// goleveldb复用内部缓冲区，Key/Value必须复制
type iterator struct {
	it ldbiter.Iterator
}

func (w *iterator) Next() bool { return w.it.Next() }

func (w *iterator) Key() []byte {
	k := w.it.Key()
	out := make([]byte, len(k))
	copy(out, k)
	return out
}

func (w *iterator) Value() []byte {
	v := w.it.Value()
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

func (w *iterator) Error() error { return w.it.Error() }

func (w *iterator) Release() { w.it.Release() }

// dataDir 返回实际的数据目录：<path>/<name>
func (s *Store) dataDir() string {
	return filepath.Join(s.config.GetPath(), s.config.GetName())
}
