package boltdb

import (
	"context"
	"testing"

	boltconfig "github.com/nexachain/v1/internal/config/storage/bolt"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 创建测试用存储实例
func setupTestStore(t *testing.T) *Store {
	cfg := boltconfig.NewFromOptions(&boltconfig.Options{
		Name:        "test",
		Path:        t.TempDir(),
		OpenTimeout: boltconfig.DefaultOpenTimeout,
	})

	store, err := New(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// 测试配置校验：名称和路径必须非空
func TestBoltRequiresNameAndPath(t *testing.T) {
	_, err := New(boltconfig.NewFromOptions(&boltconfig.Options{Path: t.TempDir()}), nil)
	assert.ErrorIs(t, err, storage.ErrConfiguration)

	_, err = New(boltconfig.NewFromOptions(&boltconfig.Options{Name: "test"}), nil)
	assert.ErrorIs(t, err, storage.ErrConfiguration)
}

// 测试基本的键值操作
func TestBoltBasicOperations(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, found, err := store.Get(ctx, []byte("missing"))
	assert.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Put(ctx, []byte("k"), []byte("v")))
	val, found, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, store.Delete(ctx, []byte("k")))
	_, found, err = store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.False(t, found)
}

// 测试B+树引擎支持廉价计数
func TestBoltSizeIsCheap(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)

	empty, err := store.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, store.PutBatch(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}))

	size, err = store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)

	empty, err = store.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)
}

// 测试迭代器覆盖全部键值
func TestBoltIterator(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutBatch(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
		"c": []byte("3"),
	}))

	it, err := store.NewIterator(ctx)
	require.NoError(t, err)
	defer it.Release()

	seen := make(map[string]string)
	for it.Next() {
		seen[string(it.Key())] = string(it.Value())
	}
	require.NoError(t, it.Error())
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, seen)
}

// 测试关闭后重新打开数据仍在
func TestBoltReopen(t *testing.T) {
	cfg := boltconfig.NewFromOptions(&boltconfig.Options{
		Name:        "reopen",
		Path:        t.TempDir(),
		OpenTimeout: boltconfig.DefaultOpenTimeout,
	})

	store, err := New(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, store.Open())

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, []byte("k"), []byte("v")))
	require.NoError(t, store.Close())

	_, _, err = store.Get(ctx, []byte("k"))
	assert.ErrorIs(t, err, storage.ErrClosed)

	require.NoError(t, store.Open())
	defer store.Close()

	val, found, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), val)
}
