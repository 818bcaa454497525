package storage

import (
	"fmt"

	badgerconfig "github.com/nexachain/v1/internal/config/storage/badger"
	boltconfig "github.com/nexachain/v1/internal/config/storage/bolt"
	database "github.com/nexachain/v1/internal/config/storage/database"
	leveldbconfig "github.com/nexachain/v1/internal/config/storage/leveldb"
	pebbleconfig "github.com/nexachain/v1/internal/config/storage/pebble"
	redisconfig "github.com/nexachain/v1/internal/config/storage/redis"
	"github.com/nexachain/v1/internal/core/infrastructure/storage/badgerdb"
	"github.com/nexachain/v1/internal/core/infrastructure/storage/boltdb"
	"github.com/nexachain/v1/internal/core/infrastructure/storage/generic"
	"github.com/nexachain/v1/internal/core/infrastructure/storage/leveldb"
	"github.com/nexachain/v1/internal/core/infrastructure/storage/mockdb"
	"github.com/nexachain/v1/internal/core/infrastructure/storage/pebble"
	"github.com/nexachain/v1/internal/core/infrastructure/storage/redisdb"
	"github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// Factory 存储工厂
//
// 🏭 **数据库组合工厂**：
// 根据配置选择存储引擎，并按需叠加堆缓存、锁和计时装饰器。
// 调用方只面对统一的Database接口，对底层引擎和装饰层次无感知。
//
// 连接失败不向调用方抛出：错误记入日志，返回nil句柄，
// 由调用方检查nil决定降级或终止
type Factory struct {
	logger   log.Logger
	registry *DriverRegistry
}

// NewFactory 创建存储工厂
// registry为nil时使用空注册表，此时未知的db_type一律连接失败
func NewFactory(logger log.Logger, registry *DriverRegistry) *Factory {
	if registry == nil {
		registry = NewDriverRegistry()
	}
	return &Factory{logger: logger, registry: registry}
}

// Registry 返回工厂持有的驱动注册表
func (f *Factory) Registry() *DriverRegistry { return f.registry }

// Connect 根据配置连接数据库
// 返回的句柄已按配置完成装饰组合；任何失败返回nil并记录日志
func (f *Factory) Connect(props database.Properties) storageInterface.Database {
	db, err := f.connect(props)
	if err != nil {
		if f.logger != nil {
			f.logger.Errorf("数据库连接失败 (db_type=%s, db_name=%s): %v",
				props.Get(database.PropDBType), props.Get(database.PropDBName), err)
		}
		return nil
	}
	return db
}

// ConnectWithDiagnostics 连接数据库并在最外层叠加计时装饰器
// 无论内部装饰层次如何，每个操作的耗时都会被观测
func (f *Factory) ConnectWithDiagnostics(props database.Properties) storageInterface.Database {
	db := f.Connect(props)
	if db == nil {
		return nil
	}
	return generic.NewTimed(db, f.logger)
}

// ConnectDriver 强制走驱动注册表连接数据库
// 绕过内置引擎解析，用于显式指定第三方驱动
func (f *Factory) ConnectDriver(driverName string, props database.Properties) storageInterface.Database {
	db, err := f.connectDriver(driverName, props)
	if err != nil {
		if f.logger != nil {
			f.logger.Errorf("驱动连接失败 (driver=%s, db_name=%s): %v",
				driverName, props.Get(database.PropDBName), err)
		}
		return nil
	}
	return f.decorate(db, false, props)
}

// ConnectMock 创建临时内存数据库，不叠加任何装饰器
// 测试和脚手架代码的快捷入口
func (f *Factory) ConnectMock(name string) storageInterface.Database {
	return mockdb.New(name, f.logger)
}

// connect 解析引擎并完成装饰组合
func (f *Factory) connect(props database.Properties) (storageInterface.Database, error) {
	dbType := props.Get(database.PropDBType)
	if dbType == "" {
		return nil, fmt.Errorf("缺少 %s 配置项: %w", database.PropDBType, storageInterface.ErrConfiguration)
	}

	vendor, ok := VendorFromString(dbType)
	if !ok {
		// 非内置引擎转入驱动注册表路径
		db, err := f.connectDriver(dbType, props)
		if err != nil {
			return nil, err
		}
		return f.decorate(db, false, props), nil
	}

	if vendor.RequiresNameAndPath() {
		if props.Get(database.PropDBName) == "" || props.Get(database.PropDBPath) == "" {
			return nil, fmt.Errorf("引擎 %s 需要非空的 %s 和 %s: %w",
				vendor, database.PropDBName, database.PropDBPath, storageInterface.ErrConfiguration)
		}
	}

	store, err := f.newStore(vendor, props)
	if err != nil {
		return nil, err
	}
	return f.decorate(store, store.SerializesWrites(), props), nil
}

// connectDriver 通过注册表实例化驱动并建立连接
func (f *Factory) connectDriver(driverName string, props database.Properties) (storageInterface.Database, error) {
	driver, err := f.registry.Resolve(driverName)
	if err != nil {
		return nil, err
	}
	db, err := driver.Connect(props.Copy())
	if err != nil {
		return nil, fmt.Errorf("驱动 %s 建立连接失败: %v: %w", driverName, err, storageInterface.ErrDriverLoad)
	}
	if db == nil {
		return nil, fmt.Errorf("驱动 %s 返回了空句柄: %w", driverName, storageInterface.ErrDriverLoad)
	}
	return db, nil
}

// newStore 按引擎实例化原生适配器
func (f *Factory) newStore(vendor Vendor, props database.Properties) (storageInterface.Store, error) {
	name := props.Get(database.PropDBName)
	switch vendor {
	case VendorLevelDB:
		return leveldb.New(leveldbconfig.NewFromProps(props), f.logger)
	case VendorPebble:
		return pebble.New(pebbleconfig.NewFromProps(props), f.logger)
	case VendorBadgerDB:
		return badgerdb.New(badgerconfig.NewFromProps(props), f.logger)
	case VendorBoltDB:
		return boltdb.New(boltconfig.NewFromProps(props), f.logger)
	case VendorRedis:
		return redisdb.New(redisconfig.NewFromProps(props), f.logger)
	case VendorMockDB:
		if props.GetBool(database.PropPersistent) {
			return mockdb.NewPersistent(name, props.Get(database.PropDBPath), f.logger)
		}
		return mockdb.New(name, f.logger), nil
	case VendorPersistentMockDB:
		return mockdb.NewPersistent(name, props.Get(database.PropDBPath), f.logger)
	}
	return nil, fmt.Errorf("未实现的存储引擎 %s: %w", vendor, storageInterface.ErrConfiguration)
}

// decorate 按配置叠加装饰器
//
// 组合顺序固定为 锁(缓存(原生))：
// 缓存必须在锁内侧，其变更集才受锁保护；
// 计时装饰器不在此处理，由ConnectWithDiagnostics在最外层叠加。
// 写串行化引擎使用宽松锁变体，但堆缓存启用时仍退回通用排他锁，
// 因为变更集本身不做并发保护
func (f *Factory) decorate(db storageInterface.Database, serializesWrites bool, props database.Properties) storageInterface.Database {
	cacheEnabled := props.GetBool(database.PropEnableHeapCache)
	if cacheEnabled {
		db = generic.NewCached(
			db,
			f.logger,
			props.GetBool(database.PropEnableAutoCommit),
			props.GetInt(database.PropMaxHeapCacheSize, database.DefaultMaxHeapCacheSize),
			props.GetBool(database.PropEnableHeapCacheStats),
		)
	}

	if props.GetBool(database.PropEnableLocking) {
		if serializesWrites && !cacheEnabled {
			db = generic.NewSpecialLocked(db)
		} else {
			db = generic.NewLocked(db)
		}
	}
	return db
}
