// Package pebble 提供基于Pebble的存储实现
package pebble

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	pdb "github.com/cockroachdb/pebble"

	pebbleconfig "github.com/nexachain/v1/internal/config/storage/pebble"
	log "github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// Store 实现基于Pebble的键值数据库
type Store struct {
	config *pebbleconfig.Config
	logger log.Logger
	db     *pdb.DB
	cache  *pdb.Cache
}

// 确保实现接口
var _ storage.Store = (*Store)(nil)

// New 创建新的Pebble存储实例
// 名称和路径必须非空，缺失时返回包装了ErrConfiguration的错误
func New(config *pebbleconfig.Config, logger log.Logger) (*Store, error) {
	if config.GetName() == "" || config.GetPath() == "" {
		return nil, fmt.Errorf("pebble 需要非空的名称和路径: %w", storage.ErrConfiguration)
	}
	return &Store{config: config, logger: logger}, nil
}

// Open 打开数据库
// 把缓存/压缩/调优配置翻译为Pebble原生选项
// 注意：Pebble没有独立的读缓冲选项，read_buffer_size并入块缓存预算
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}

	dataDir := s.dataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("无法创建Pebble数据目录 %s: %v: %w", dataDir, err, storage.ErrStorageUnavailable)
	}

	compression := pdb.NoCompression
	if s.config.IsCompressionEnabled() {
		compression = pdb.SnappyCompression
	}

	opts := &pdb.Options{
		MaxOpenFiles: s.config.GetMaxOpenFiles(),
		MemTableSize: uint64(s.config.GetWriteBufferSize()),
		Levels: []pdb.LevelOptions{
			{BlockSize: s.config.GetBlockSize(), Compression: compression},
		},
		Logger: newPebbleLogger(s.logger),
	}

	if s.config.IsCacheEnabled() {
		s.cache = pdb.NewCache(int64(s.config.GetCacheSize() + s.config.GetReadBufferSize()))
		opts.Cache = s.cache
	}

	db, err := pdb.Open(dataDir, opts)
	if err != nil {
		s.releaseCache()
		return fmt.Errorf("无法打开Pebble %s: %v: %w", dataDir, err, storage.ErrStorageUnavailable)
	}

	s.db = db
	if s.logger != nil {
		s.logger.Infof("Pebble存储已打开，数据目录: %s", dataDir)
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
	s.releaseCache()
	if err != nil {
		return fmt.Errorf("关闭Pebble失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// IsOpen 返回数据库是否处于打开状态
func (s *Store) IsOpen() bool { return s.db != nil }

// Name 返回逻辑名称
func (s *Store) Name() string { return s.config.GetName() }

// Path 返回数据库根路径
func (s *Store) Path() string { return s.config.GetPath() }

// SerializesWrites Pebble原生层内部序列化写入
func (s *Store) SerializesWrites() bool { return true }

// Get 获取指定键的值
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, fmt.Errorf("pebble %s: %w", s.Name(), storage.ErrClosed)
	}
	value, closer, err := s.db.Get(key)
	if err == pdb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("pebble获取键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	// Pebble返回的切片在closer关闭后失效，必须复制
	out := make([]byte, len(value))
	copy(out, value)
	if err := closer.Close(); err != nil {
		return nil, false, fmt.Errorf("pebble释放读取缓冲失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return out, true, nil
}

// Put 设置键值对
func (s *Store) Put(ctx context.Context, key, value []byte) error {
	if s.db == nil {
		return fmt.Errorf("pebble %s: %w", s.Name(), storage.ErrClosed)
	}
	if err := s.db.Set(key, value, pdb.Sync); err != nil {
		return fmt.Errorf("pebble写入键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// PutBatch 批量设置多个键值对（单个原生批次原子提交）
func (s *Store) PutBatch(ctx context.Context, entries map[string][]byte) error {
	if s.db == nil {
		return fmt.Errorf("pebble %s: %w", s.Name(), storage.ErrClosed)
	}
	batch := s.db.NewBatch()
	defer batch.Close()
	for k, v := range entries {
		if err := batch.Set([]byte(k), v, nil); err != nil {
			return fmt.Errorf("pebble批次构建失败: %v: %w", err, storage.ErrOperationFailed)
		}
	}
	if err := batch.Commit(pdb.Sync); err != nil {
		return fmt.Errorf("pebble批量写入失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	if s.db == nil {
		return fmt.Errorf("pebble %s: %w", s.Name(), storage.ErrClosed)
	}
	if err := s.db.Delete(key, pdb.Sync); err != nil {
		return fmt.Errorf("pebble删除键失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return nil
}

// Commit Pebble的写入即时落盘，没有额外的提交边界
func (s *Store) Commit(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("pebble %s: %w", s.Name(), storage.ErrClosed)
	}
	return nil
}

// IsEmpty 返回数据库是否为空
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("pebble %s: %w", s.Name(), storage.ErrClosed)
	}
	it, err := s.db.NewIter(nil)
	if err != nil {
		return false, fmt.Errorf("pebble扫描失败: %v: %w", err, storage.ErrOperationFailed)
	}
	defer it.Close()
	return !it.First(), nil
}

// Size LSM树无法廉价统计键数量
func (s *Store) Size(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("pebble %s: %w", s.Name(), storage.ErrClosed)
	}
	return 0, fmt.Errorf("pebble不支持廉价的数量统计: %w", storage.ErrUnsupportedOperation)
}

// NewIterator 创建全量扫描迭代器
func (s *Store) NewIterator(ctx context.Context) (storage.Iterator, error) {
	if s.db == nil {
		return nil, fmt.Errorf("pebble %s: %w", s.Name(), storage.ErrClosed)
	}
	it, err := s.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("pebble创建迭代器失败: %v: %w", err, storage.ErrOperationFailed)
	}
	return &iterator{it: it}, nil
}

// iterator 包装Pebble迭代器
// Pebble复用内部缓冲区，Key/Value必须复制
type iterator struct {
	it      *pdb.Iterator
	started bool
	err     error
}

func (w *iterator) Next() bool {
	if w.it == nil {
		return false
	}
	if !w.started {
		w.started = true
		return w.it.First()
	}
	return w.it.Next()
}

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

func (w *iterator) Error() error {
	if w.err != nil {
		return w.err
	}
	if w.it == nil {
		return nil
	}
	return w.it.Error()
}

func (w *iterator) Release() {
	if w.it != nil {
		if err := w.it.Close(); err != nil && w.err == nil {
			w.err = err
		}
		w.it = nil
	}
}

// releaseCache 释放块缓存的引用计数
func (s *Store) releaseCache() {
	if s.cache != nil {
		s.cache.Unref()
		s.cache = nil
	}
}

// dataDir 返回实际的数据目录：<path>/<name>
func (s *Store) dataDir() string {
	return filepath.Join(s.config.GetPath(), s.config.GetName())
}

// pebbleLogger 实现Pebble的日志接口
type pebbleLogger struct {
	logger log.Logger
}

// newPebbleLogger 创建Pebble日志适配器
func newPebbleLogger(logger log.Logger) *pebbleLogger {
	return &pebbleLogger{logger: logger}
}

// Infof 输出信息日志
func (l *pebbleLogger) Infof(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Infof("[Pebble] "+format, args...)
	}
}

// Errorf 输出错误日志
func (l *pebbleLogger) Errorf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Errorf("[Pebble] "+format, args...)
	}
}

// Fatalf 输出致命日志
func (l *pebbleLogger) Fatalf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Fatalf("[Pebble] "+format, args...)
	}
}
