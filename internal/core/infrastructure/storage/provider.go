package storage

import (
	"errors"
	"fmt"
	"sync"

	database "github.com/nexachain/v1/internal/config/storage/database"
	"github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// Provider 存储提供者
// 管理已连接的数据库句柄，按逻辑名称提供查找和统一关闭
type Provider struct {
	factory *Factory
	logger  log.Logger

	handles map[string]storageInterface.Database

	// 读写锁，保护并发访问
	mu sync.RWMutex
}

// NewProvider 创建新的存储提供者实例
func NewProvider(factory *Factory, logger log.Logger) *Provider {
	return &Provider{
		factory: factory,
		logger:  logger,
		handles: make(map[string]storageInterface.Database),
	}
}

// Open 连接数据库并按逻辑名称登记句柄
// 同名句柄已存在时直接复用，不重复连接；
// 连接失败时保留底层错误的分类（配置错误、驱动加载错误等）
func (p *Provider) Open(props database.Properties) (storageInterface.Database, error) {
	name := props.Get(database.PropDBName)
	if name == "" {
		return nil, fmt.Errorf("登记数据库句柄需要非空的 %s: %w", database.PropDBName, storageInterface.ErrConfiguration)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if db, exists := p.handles[name]; exists {
		return db, nil
	}

	db, err := p.factory.connect(props)
	if err != nil {
		if p.logger != nil {
			p.logger.Errorf("数据库 %s 连接失败: %v", name, err)
		}
		return nil, fmt.Errorf("数据库 %s 连接失败: %w", name, err)
	}
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("数据库 %s 打开失败: %w", name, err)
	}

	p.handles[name] = db
	if p.logger != nil {
		p.logger.Infof("✅ 数据库 %s 已登记", name)
	}
	return db, nil
}

// Get 按逻辑名称查找已登记的数据库句柄
func (p *Provider) Get(name string) (storageInterface.Database, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	db, exists := p.handles[name]
	if !exists {
		return nil, fmt.Errorf("未找到名为 %s 的数据库句柄", name)
	}
	return db, nil
}

// Names 返回全部已登记句柄的逻辑名称
func (p *Provider) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.handles))
	for name := range p.handles {
		names = append(names, name)
	}
	return names
}

// Close 关闭所有已登记的数据库句柄
// 单个句柄关闭失败不中断其余句柄的关闭，错误聚合后返回
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.logger != nil {
		p.logger.Info("关闭所有存储连接...")
	}

	var errs []error
	for name, db := range p.handles {
		if err := db.Close(); err != nil {
			if p.logger != nil {
				p.logger.Errorf("关闭数据库 %s 失败: %v", name, err)
			}
			errs = append(errs, fmt.Errorf("关闭数据库 %s 失败: %w", name, err))
			continue
		}
		if p.logger != nil {
			p.logger.Infof("数据库 %s 已关闭", name)
		}
	}
	p.handles = make(map[string]storageInterface.Database)

	if p.logger != nil {
		p.logger.Info("所有存储连接已关闭")
	}
	return errors.Join(errs...)
}
