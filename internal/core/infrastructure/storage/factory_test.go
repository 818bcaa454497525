package storage

import (
	"context"
	"testing"

	database "github.com/nexachain/v1/internal/config/storage/database"
	"github.com/nexachain/v1/internal/core/infrastructure/storage/generic"
	"github.com/nexachain/v1/internal/core/infrastructure/storage/mockdb"
	"github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 模拟Logger接口
type mockLogger struct{}

func (m *mockLogger) Debug(msg string)                          {}
func (m *mockLogger) Debugf(format string, args ...interface{}) {}
func (m *mockLogger) Info(msg string)                           {}
func (m *mockLogger) Infof(format string, args ...interface{})  {}
func (m *mockLogger) Warn(msg string)                           {}
func (m *mockLogger) Warnf(format string, args ...interface{})  {}
func (m *mockLogger) Error(msg string)                          {}
func (m *mockLogger) Errorf(format string, args ...interface{}) {}
func (m *mockLogger) Fatal(msg string)                          {}
func (m *mockLogger) Fatalf(format string, args ...interface{}) {}
func (m *mockLogger) With(args ...interface{}) log.Logger       { return m }
func (m *mockLogger) Sync() error                               { return nil }
func (m *mockLogger) GetZapLogger() *zap.Logger                 { return nil }

// 测试未知引擎且无注册驱动时返回nil句柄
func TestConnectUnknownVendorReturnsNil(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)

	db := factory.Connect(database.Properties{
		database.PropDBType: "h2",
		database.PropDBName: "test",
		database.PropDBPath: t.TempDir(),
	})
	assert.Nil(t, db)
}

// 测试缺少名称或路径时返回nil句柄
func TestConnectMissingNameOrPathReturnsNil(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)

	// 缺少名称
	assert.Nil(t, factory.Connect(database.Properties{
		database.PropDBType: string(VendorLevelDB),
		database.PropDBPath: t.TempDir(),
	}))

	// 缺少路径
	assert.Nil(t, factory.Connect(database.Properties{
		database.PropDBType: string(VendorLevelDB),
		database.PropDBName: "test",
	}))

	// 缺少类型
	assert.Nil(t, factory.Connect(database.Properties{
		database.PropDBName: "test",
		database.PropDBPath: t.TempDir(),
	}))
}

// 测试mock引擎无需名称和路径
func TestConnectMockVendorNeedsNoNameOrPath(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)

	db := factory.Connect(database.Properties{
		database.PropDBType: string(VendorMockDB),
	})
	require.NotNil(t, db)
	require.NoError(t, db.Open())
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.Put(ctx, []byte("k"), []byte("v")))
	val, found, err := db.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), val)
}

// 测试装饰组合：锁在外，缓存在内
func TestConnectDecoratorComposition(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)

	// 锁 + 缓存
	db := factory.Connect(database.Properties{
		database.PropDBType:          string(VendorMockDB),
		database.PropEnableLocking:   "true",
		database.PropEnableHeapCache: "true",
	})
	require.NotNil(t, db)
	_, isLocked := db.(*generic.LockedDatabase)
	assert.True(t, isLocked, "最外层应是锁装饰器")

	// 仅锁
	db = factory.Connect(database.Properties{
		database.PropDBType:        string(VendorMockDB),
		database.PropEnableLocking: "true",
	})
	require.NotNil(t, db)
	_, isLocked = db.(*generic.LockedDatabase)
	assert.True(t, isLocked)

	// 仅缓存
	db = factory.Connect(database.Properties{
		database.PropDBType:          string(VendorMockDB),
		database.PropEnableHeapCache: "true",
	})
	require.NotNil(t, db)
	_, isCached := db.(*generic.CachedDatabase)
	assert.True(t, isCached, "无锁配置下最外层应是缓存装饰器")

	// 不启用任何装饰器时返回裸实例
	db = factory.Connect(database.Properties{
		database.PropDBType: string(VendorMockDB),
	})
	require.NotNil(t, db)
	_, isMock := db.(*mockdb.Store)
	assert.True(t, isMock)
}

// 测试写串行化引擎在无缓存时选用宽松锁变体
func TestConnectSpecialLockSelection(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)

	db := factory.Connect(database.Properties{
		database.PropDBType:        string(VendorLevelDB),
		database.PropDBName:        "test",
		database.PropDBPath:        t.TempDir(),
		database.PropEnableLocking: "true",
	})
	require.NotNil(t, db)
	_, isSpecial := db.(*generic.SpecialLockedDatabase)
	assert.True(t, isSpecial, "LSM引擎无缓存时应选用宽松锁变体")

	// 堆缓存启用时退回通用锁
	db = factory.Connect(database.Properties{
		database.PropDBType:          string(VendorLevelDB),
		database.PropDBName:          "test2",
		database.PropDBPath:          t.TempDir(),
		database.PropEnableLocking:   "true",
		database.PropEnableHeapCache: "true",
	})
	require.NotNil(t, db)
	_, isGeneric := db.(*generic.LockedDatabase)
	assert.True(t, isGeneric, "堆缓存启用时应退回通用锁")

	// 非写串行化引擎始终使用通用锁
	db = factory.Connect(database.Properties{
		database.PropDBType:        string(VendorMockDB),
		database.PropEnableLocking: "true",
	})
	require.NotNil(t, db)
	_, isGeneric = db.(*generic.LockedDatabase)
	assert.True(t, isGeneric)
}

// 测试诊断入口在最外层叠加计时装饰器
func TestConnectWithDiagnostics(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)

	db := factory.ConnectWithDiagnostics(database.Properties{
		database.PropDBType:        string(VendorMockDB),
		database.PropEnableLocking: "true",
	})
	require.NotNil(t, db)
	_, isTimed := db.(*generic.TimedDatabase)
	assert.True(t, isTimed, "诊断模式下最外层应是计时装饰器")

	require.NoError(t, db.Open())
	defer db.Close()
	require.NoError(t, db.Put(context.Background(), []byte("k"), []byte("v")))

	// 连接失败时诊断入口同样返回nil
	assert.Nil(t, factory.ConnectWithDiagnostics(database.Properties{
		database.PropDBType: "unknown",
	}))
}

// 测试快捷mock入口绕过全部装饰器
func TestConnectMockBypassesDecorators(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)

	db := factory.ConnectMock("scratch")
	require.NotNil(t, db)
	_, isMock := db.(*mockdb.Store)
	assert.True(t, isMock)
	assert.Equal(t, "scratch", db.Name())
}

// 测试持久化mock通过工厂连接的完整往返
func TestConnectPersistentMockRoundTrip(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)
	dir := t.TempDir()
	ctx := context.Background()

	props := database.Properties{
		database.PropDBType: string(VendorPersistentMockDB),
		database.PropDBName: "state",
		database.PropDBPath: dir,
	}

	db := factory.Connect(props)
	require.NotNil(t, db)
	require.NoError(t, db.Open())
	require.NoError(t, db.Put(ctx, []byte("k"), []byte("v")))
	require.NoError(t, db.Close())

	reopened := factory.Connect(props)
	require.NotNil(t, reopened)
	require.NoError(t, reopened.Open())
	defer reopened.Close()

	val, found, err := reopened.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), val)
}

// 测试持久化mock缺少名称或路径时返回nil
func TestConnectPersistentMockRequiresNameAndPath(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)

	assert.Nil(t, factory.Connect(database.Properties{
		database.PropDBType: string(VendorPersistentMockDB),
		database.PropDBName: "state",
	}))
	assert.Nil(t, factory.Connect(database.Properties{
		database.PropDBType: string(VendorPersistentMockDB),
		database.PropDBPath: t.TempDir(),
	}))
}

// 测试persistent标志把mockdb切换到持久化变体
func TestConnectMockPersistentFlag(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)
	dir := t.TempDir()
	ctx := context.Background()

	props := database.Properties{
		database.PropDBType:     string(VendorMockDB),
		database.PropDBName:     "flagged",
		database.PropDBPath:     dir,
		database.PropPersistent: "true",
	}

	db := factory.Connect(props)
	require.NotNil(t, db)
	require.NoError(t, db.Open())
	require.NoError(t, db.Put(ctx, []byte("k"), []byte("v")))
	require.NoError(t, db.Close())

	reopened := factory.Connect(props)
	require.NotNil(t, reopened)
	require.NoError(t, reopened.Open())
	defer reopened.Close()

	_, found, err := reopened.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.True(t, found)
}

// 通过工厂对嵌入式引擎做完整往返（leveldb）
func TestConnectLevelDBRoundTrip(t *testing.T) {
	factory := NewFactory(&mockLogger{}, nil)
	ctx := context.Background()

	db := factory.Connect(database.Properties{
		database.PropDBType:        string(VendorLevelDB),
		database.PropDBName:        "chain",
		database.PropDBPath:        t.TempDir(),
		database.PropEnableLocking: "true",
	})
	require.NotNil(t, db)
	require.NoError(t, db.Open())
	defer db.Close()

	require.NoError(t, db.Put(ctx, []byte("block-1"), []byte("header")))
	require.NoError(t, db.PutBatch(ctx, map[string][]byte{
		"block-2": []byte("header2"),
		"block-3": []byte("header3"),
	}))

	val, found, err := db.Get(ctx, []byte("block-2"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("header2"), val)

	empty, err := db.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	// LSM引擎不支持廉价计数
	_, err = db.Size(ctx)
	assert.ErrorIs(t, err, storageInterface.ErrUnsupportedOperation)
}
