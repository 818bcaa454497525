package generic

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/nexachain/v1/internal/core/infrastructure/storage/mockdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试锁装饰器不改变基本操作语义
func TestLockedBasicOperations(t *testing.T) {
	locked := NewLocked(mockdb.New("inner", nil))
	require.NoError(t, locked.Open())
	defer locked.Close()

	ctx := context.Background()
	require.NoError(t, locked.Put(ctx, []byte("k"), []byte("v")))

	val, found, err := locked.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, locked.Delete(ctx, []byte("k")))
	_, found, err = locked.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.False(t, found)
}

// 并发属性测试：多协程写不相交的键集，全部写入最终可见
// 内存mock自身没有并发保护，正确性完全依赖锁装饰器
func TestLockedConcurrentDisjointWrites(t *testing.T) {
	locked := NewLocked(mockdb.New("inner", nil))
	require.NoError(t, locked.Open())
	defer locked.Close()

	ctx := context.Background()
	const goroutines = 8
	const keysPerGoroutine = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < keysPerGoroutine; i++ {
				key := []byte(fmt.Sprintf("g%d-k%d", g, i))
				if err := locked.Put(ctx, key, []byte(fmt.Sprintf("v%d", i))); err != nil {
					t.Errorf("并发写入失败: %v", err)
					return
				}
				// 穿插读操作，覆盖读写锁的共享路径
				if _, _, err := locked.Get(ctx, key); err != nil {
					t.Errorf("并发读取失败: %v", err)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	size, err := locked.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines*keysPerGoroutine), size)

	for g := 0; g < goroutines; g++ {
		for i := 0; i < keysPerGoroutine; i++ {
			val, found, err := locked.Get(ctx, []byte(fmt.Sprintf("g%d-k%d", g, i)))
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, []byte(fmt.Sprintf("v%d", i)), val)
		}
	}
}

// 测试并发批量写入与提交
func TestLockedConcurrentBatches(t *testing.T) {
	locked := NewLocked(mockdb.New("inner", nil))
	require.NoError(t, locked.Open())
	defer locked.Close()

	ctx := context.Background()
	const goroutines = 4

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			entries := make(map[string][]byte)
			for i := 0; i < 50; i++ {
				entries[fmt.Sprintf("batch%d-k%d", g, i)] = []byte("v")
			}
			if err := locked.PutBatch(ctx, entries); err != nil {
				t.Errorf("并发批量写入失败: %v", err)
			}
			if err := locked.Commit(ctx); err != nil {
				t.Errorf("并发提交失败: %v", err)
			}
		}(g)
	}
	wg.Wait()

	size, err := locked.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines*50), size)
}

// 测试宽松锁变体：状态切换受保护，基本语义不变
func TestSpecialLockedBasicOperations(t *testing.T) {
	locked := NewSpecialLocked(mockdb.New("inner", nil))
	require.NoError(t, locked.Open())
	assert.True(t, locked.IsOpen())

	ctx := context.Background()
	require.NoError(t, locked.Put(ctx, []byte("k"), []byte("v")))
	require.NoError(t, locked.PutBatch(ctx, map[string][]byte{"k2": []byte("v2")}))

	val, found, err := locked.Get(ctx, []byte("k2"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v2"), val)

	require.NoError(t, locked.Close())
	assert.False(t, locked.IsOpen())
}

// 测试宽松锁变体下并发读与状态查询不会交错出错
func TestSpecialLockedConcurrentReads(t *testing.T) {
	locked := NewSpecialLocked(mockdb.New("inner", nil))
	require.NoError(t, locked.Open())
	defer locked.Close()

	ctx := context.Background()
	require.NoError(t, locked.PutBatch(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if _, _, err := locked.Get(ctx, []byte("a")); err != nil {
					t.Errorf("并发读取失败: %v", err)
					return
				}
				_ = locked.IsOpen()
			}
		}()
	}
	wg.Wait()
}
