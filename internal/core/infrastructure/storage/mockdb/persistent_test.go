package mockdb

import (
	"context"
	"testing"

	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试配置校验：名称和路径必须非空
func TestPersistentMockRequiresNameAndPath(t *testing.T) {
	_, err := NewPersistent("", t.TempDir(), nil)
	assert.ErrorIs(t, err, storage.ErrConfiguration)

	_, err = NewPersistent("db", "", nil)
	assert.ErrorIs(t, err, storage.ErrConfiguration)
}

// 测试干净关闭后重新打开能读回全部数据
func TestPersistentMockSurvivesCleanClose(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewPersistent("chain-index", dir, nil)
	require.NoError(t, err)
	require.NoError(t, store.Open())

	require.NoError(t, store.Put(ctx, []byte("height"), []byte("42")))
	require.NoError(t, store.PutBatch(ctx, map[string][]byte{
		"best-block": []byte("0xabc"),
		"genesis":    []byte("0x000"),
	}))
	require.NoError(t, store.Delete(ctx, []byte("genesis")))

	// 关闭写出快照
	require.NoError(t, store.Close())

	// 新实例从快照恢复
	reopened, err := NewPersistent("chain-index", dir, nil)
	require.NoError(t, err)
	require.NoError(t, reopened.Open())
	defer reopened.Close()

	val, found, err := reopened.Get(ctx, []byte("height"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("42"), val)

	val, found, err = reopened.Get(ctx, []byte("best-block"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("0xabc"), val)

	// 关闭前删除的键不在快照里
	_, found, err = reopened.Get(ctx, []byte("genesis"))
	require.NoError(t, err)
	assert.False(t, found)
}

// 测试崩溃语义：没有干净关闭就重新打开，未落盘的数据全部丢失
func TestPersistentMockLosesDataWithoutClose(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewPersistent("volatile", dir, nil)
	require.NoError(t, err)
	require.NoError(t, store.Open())
	require.NoError(t, store.Put(ctx, []byte("k"), []byte("v")))
	// 不调用Close，模拟进程崩溃

	crashed, err := NewPersistent("volatile", dir, nil)
	require.NoError(t, err)
	require.NoError(t, crashed.Open())
	defer crashed.Close()

	_, found, err := crashed.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.False(t, found)
}

// 测试首次打开：快照文件不存在时从空库开始
func TestPersistentMockFreshStart(t *testing.T) {
	store, err := NewPersistent("fresh", t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Open())
	defer store.Close()

	empty, err := store.IsEmpty(context.Background())
	require.NoError(t, err)
	assert.True(t, empty)
}

// 测试二进制键值经过快照往返后保持原样
func TestPersistentMockBinaryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	key := []byte{0x00, 0xff, 0x10, 0x80}
	value := []byte{0xde, 0xad, 0xbe, 0xef, 0x00}

	store, err := NewPersistent("binary", dir, nil)
	require.NoError(t, err)
	require.NoError(t, store.Open())
	require.NoError(t, store.Put(ctx, key, value))
	require.NoError(t, store.Close())

	reopened, err := NewPersistent("binary", dir, nil)
	require.NoError(t, err)
	require.NoError(t, reopened.Open())
	defer reopened.Close()

	val, found, err := reopened.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, value, val)
}
