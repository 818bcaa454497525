package redisdb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	redisconfig "github.com/nexachain/v1/internal/config/storage/redis"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试配置校验：名称和服务器地址必须非空
func TestRedisRequiresNameAndAddr(t *testing.T) {
	_, err := New(redisconfig.NewFromOptions(&redisconfig.Options{Addr: "localhost:6379"}), nil)
	assert.ErrorIs(t, err, storage.ErrConfiguration)

	_, err = New(redisconfig.NewFromOptions(&redisconfig.Options{Name: "test"}), nil)
	assert.ErrorIs(t, err, storage.ErrConfiguration)
}

// 测试未打开状态下的操作返回ErrClosed
// 服务器可达时的读写行为由TestRedisRoundTrip覆盖
func TestRedisClosedStateErrors(t *testing.T) {
	store, err := New(redisconfig.NewFromOptions(&redisconfig.Options{
		Name: "test",
		Addr: "localhost:6379",
	}), nil)
	require.NoError(t, err)
	assert.False(t, store.IsOpen())

	ctx := context.Background()
	_, _, err = store.Get(ctx, []byte("k"))
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorIs(t, store.Put(ctx, []byte("k"), []byte("v")), storage.ErrClosed)
	assert.ErrorIs(t, store.Delete(ctx, []byte("k")), storage.ErrClosed)

	_, err = store.NewIterator(ctx)
	assert.ErrorIs(t, err, storage.ErrClosed)

	// 关闭未打开的连接是空操作
	assert.NoError(t, store.Close())
}

// 测试可达服务器上的读写往返
// 本地没有Redis实例时跳过；服务器地址可通过NEX_REDIS_ADDR覆盖
func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("NEX_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	// 时间戳命名空间，避免与环境里的残留键冲突
	store, err := New(redisconfig.NewFromOptions(&redisconfig.Options{
		Name:        fmt.Sprintf("roundtrip-%d", time.Now().UnixNano()),
		Addr:        addr,
		DialTimeout: time.Second,
	}), nil)
	require.NoError(t, err)

	if err := store.Open(); err != nil {
		t.Skipf("跳过：Redis服务器 %s 不可达: %v", addr, err)
	}

	ctx := context.Background()
	defer func() {
		// 清理本测试命名空间下写入的全部键
		it, err := store.NewIterator(ctx)
		if err == nil {
			var keys [][]byte
			for it.Next() {
				keys = append(keys, it.Key())
			}
			it.Release()
			for _, k := range keys {
				_ = store.Delete(ctx, k)
			}
		}
		require.NoError(t, store.Close())
	}()

	require.NoError(t, store.Put(ctx, []byte("height"), []byte("42")))
	value, found, err := store.Get(ctx, []byte("height"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("42"), value)

	// 未写入的键返回未命中而非错误
	_, found, err = store.Get(ctx, []byte("missing"))
	require.NoError(t, err)
	assert.False(t, found)

	// 批量写入后迭代器可见全部键
	require.NoError(t, store.PutBatch(ctx, map[string][]byte{
		"block-1": []byte("a"),
		"block-2": []byte("b"),
	}))

	it, err := store.NewIterator(ctx)
	require.NoError(t, err)
	seen := make(map[string]string)
	for it.Next() {
		seen[string(it.Key())] = string(it.Value())
	}
	require.NoError(t, it.Error())
	it.Release()
	assert.Equal(t, map[string]string{
		"height":  "42",
		"block-1": "a",
		"block-2": "b",
	}, seen)

	// 删除后不可见
	require.NoError(t, store.Delete(ctx, []byte("height")))
	_, found, err = store.Get(ctx, []byte("height"))
	require.NoError(t, err)
	assert.False(t, found)
}

// 测试键命名空间前缀
func TestRedisNamespacing(t *testing.T) {
	store, err := New(redisconfig.NewFromOptions(&redisconfig.Options{
		Name: "index",
		Addr: "localhost:6379",
	}), nil)
	require.NoError(t, err)

	assert.Equal(t, "index", store.Name())
	assert.Equal(t, "localhost:6379", store.Path())
	assert.Equal(t, "index:block", store.namespaced([]byte("block")))
}
