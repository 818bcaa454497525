package generic

import (
	"context"
	"testing"

	"github.com/nexachain/v1/internal/core/infrastructure/storage/mockdb"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试计时装饰器透传所有结果和错误
func TestTimedPassThrough(t *testing.T) {
	timed := NewTimed(mockdb.New("inner", nil), nil)
	require.NoError(t, timed.Open())

	ctx := context.Background()
	assert.Equal(t, "inner", timed.Name())
	assert.True(t, timed.IsOpen())

	require.NoError(t, timed.Put(ctx, []byte("k"), []byte("v")))
	val, found, err := timed.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), val)

	size, err := timed.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)

	it, err := timed.NewIterator(ctx)
	require.NoError(t, err)
	assert.True(t, it.Next())
	it.Release()

	require.NoError(t, timed.Close())

	// 错误原样透传
	_, _, err = timed.Get(ctx, []byte("k"))
	assert.ErrorIs(t, err, storage.ErrClosed)
}
