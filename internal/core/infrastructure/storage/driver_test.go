package storage

import (
	"context"
	"errors"
	"testing"

	database "github.com/nexachain/v1/internal/config/storage/database"
	"github.com/nexachain/v1/internal/core/infrastructure/storage/mockdb"
	storageInterface "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapDriver 注册表测试用驱动，返回内存mock实例
type mapDriver struct{}

func (d *mapDriver) Connect(props map[string]string) (storageInterface.Database, error) {
	return mockdb.New(props[database.PropDBName], nil), nil
}

// failingDriver 连接必定失败的驱动
type failingDriver struct{}

func (d *failingDriver) Connect(props map[string]string) (storageInterface.Database, error) {
	return nil, errors.New("connection refused")
}

// 测试注册表解析：未注册的名称返回ErrDriverLoad
func TestRegistryResolve(t *testing.T) {
	registry := NewDriverRegistry()
	registry.Register("mapdb", func() storageInterface.Driver { return &mapDriver{} })

	driver, err := registry.Resolve("mapdb")
	require.NoError(t, err)
	assert.NotNil(t, driver)

	_, err = registry.Resolve("missing")
	assert.ErrorIs(t, err, storageInterface.ErrDriverLoad)
}

// 测试未知db_type回落到驱动注册表并完成装饰组合
func TestConnectFallsBackToRegistry(t *testing.T) {
	registry := NewDriverRegistry()
	registry.Register("mapdb", func() storageInterface.Driver { return &mapDriver{} })
	factory := NewFactory(&mockLogger{}, registry)

	db := factory.Connect(database.Properties{
		database.PropDBType: "mapdb",
		database.PropDBName: "external",
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

// 测试显式驱动入口
func TestConnectDriver(t *testing.T) {
	registry := NewDriverRegistry()
	registry.Register("mapdb", func() storageInterface.Driver { return &mapDriver{} })
	registry.Register("broken", func() storageInterface.Driver { return &failingDriver{} })
	factory := NewFactory(&mockLogger{}, registry)

	db := factory.ConnectDriver("mapdb", database.Properties{
		database.PropDBName: "external",
	})
	assert.NotNil(t, db)

	// 连接失败返回nil句柄
	assert.Nil(t, factory.ConnectDriver("broken", database.Properties{}))

	// 未注册的驱动返回nil句柄
	assert.Nil(t, factory.ConnectDriver("missing", database.Properties{}))
}
