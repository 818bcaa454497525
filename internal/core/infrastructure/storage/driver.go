package storage

import (
	"fmt"
	"sync"

	storageInterface "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// DriverRegistry 第三方驱动注册表
// 未命中内置引擎的db_type在这里解析，
// 注册在进程启动时显式完成，不依赖包初始化副作用
type DriverRegistry struct {
	mu      sync.RWMutex
	drivers map[string]func() storageInterface.Driver
}

// NewDriverRegistry 创建空的驱动注册表
func NewDriverRegistry() *DriverRegistry {
	return &DriverRegistry{drivers: make(map[string]func() storageInterface.Driver)}
}

// Register 注册驱动构造函数，同名驱动后注册者覆盖先注册者
func (r *DriverRegistry) Register(name string, constructor func() storageInterface.Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers[name] = constructor
}

// Resolve 按名称实例化驱动
func (r *DriverRegistry) Resolve(name string) (storageInterface.Driver, error) {
	r.mu.RLock()
	constructor, ok := r.drivers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("未注册的存储驱动 %s: %w", name, storageInterface.ErrDriverLoad)
	}
	driver := constructor()
	if driver == nil {
		return nil, fmt.Errorf("存储驱动 %s 实例化失败: %w", name, storageInterface.ErrDriverLoad)
	}
	return driver, nil
}
