package generic

import (
	"context"
	"time"

	log "github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// TimedDatabase 计时装饰器
// 记录每个操作的耗时到调试日志和Prometheus直方图，
// 不改变任何操作的结果和错误
type TimedDatabase struct {
	inner  storage.Database
	logger log.Logger
}

// 确保实现接口
var _ storage.Database = (*TimedDatabase)(nil)

// NewTimed 创建计时装饰器
func NewTimed(inner storage.Database, logger log.Logger) *TimedDatabase {
	return &TimedDatabase{inner: inner, logger: logger}
}

// observe 上报一次操作耗时
func (t *TimedDatabase) observe(op string, start time.Time) {
	elapsed := time.Since(start)
	operationDuration.WithLabelValues(t.Name(), op).Observe(elapsed.Seconds())
	if t.logger != nil {
		t.logger.Debugf("数据库 %s 操作 %s 耗时 %v", t.Name(), op, elapsed)
	}
}

// Open 打开底层数据库
func (t *TimedDatabase) Open() error {
	defer t.observe("open", time.Now())
	return t.inner.Open()
}

// Close 关闭底层数据库
func (t *TimedDatabase) Close() error {
	defer t.observe("close", time.Now())
	return t.inner.Close()
}

// IsOpen 返回底层数据库是否处于打开状态
func (t *TimedDatabase) IsOpen() bool { return t.inner.IsOpen() }

// Name 返回底层数据库的逻辑名称
func (t *TimedDatabase) Name() string { return t.inner.Name() }

// Get 获取指定键的值
func (t *TimedDatabase) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	defer t.observe("get", time.Now())
	return t.inner.Get(ctx, key)
}

// Put 设置键值对
func (t *TimedDatabase) Put(ctx context.Context, key, value []byte) error {
	defer t.observe("put", time.Now())
	return t.inner.Put(ctx, key, value)
}

// PutBatch 批量设置多个键值对
func (t *TimedDatabase) PutBatch(ctx context.Context, entries map[string][]byte) error {
	defer t.observe("put_batch", time.Now())
	return t.inner.PutBatch(ctx, entries)
}

// Delete 删除指定键的值
func (t *TimedDatabase) Delete(ctx context.Context, key []byte) error {
	defer t.observe("delete", time.Now())
	return t.inner.Delete(ctx, key)
}

// Commit 提交待落盘变更
func (t *TimedDatabase) Commit(ctx context.Context) error {
	defer t.observe("commit", time.Now())
	return t.inner.Commit(ctx)
}

// IsEmpty 返回数据库是否为空
func (t *TimedDatabase) IsEmpty(ctx context.Context) (bool, error) {
	defer t.observe("is_empty", time.Now())
	return t.inner.IsEmpty(ctx)
}

// Size 返回数据库键数量
func (t *TimedDatabase) Size(ctx context.Context) (int64, error) {
	defer t.observe("size", time.Now())
	return t.inner.Size(ctx)
}

// NewIterator 创建迭代器（只计创建耗时，不计遍历耗时）
func (t *TimedDatabase) NewIterator(ctx context.Context) (storage.Iterator, error) {
	defer t.observe("new_iterator", time.Now())
	return t.inner.NewIterator(ctx)
}
