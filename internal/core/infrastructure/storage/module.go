package storage

import (
	"context"

	database "github.com/nexachain/v1/internal/config/storage/database"
	"github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Logger   log.Logger
	Props    database.Properties // 默认数据库配置
	Registry *DriverRegistry     `optional:"true"` // 驱动注册表（可选）
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	Factory  *Factory
	Provider *Provider

	// 默认数据库句柄（按Props连接并登记）
	Database storageInterface.Database
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		// 提供存储服务
		fx.Provide(ProvideServices),

		// 生命周期钩子：应用停止时统一关闭全部句柄
		fx.Invoke(func(lc fx.Lifecycle, provider *Provider, logger log.Logger) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					logger.Info("正在关闭存储服务...")
					if err := provider.Close(); err != nil {
						logger.Errorf("关闭存储服务失败: %v", err)
						return err
					}
					logger.Info("存储服务已安全关闭")
					return nil
				},
			})
		}),
	)
}

// ProvideServices 提供存储服务
// 根据配置构建工厂并连接默认数据库
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	var storageLogger log.Logger
	if params.Logger != nil {
		storageLogger = params.Logger.With("module", "storage")
	}

	factory := NewFactory(storageLogger, params.Registry)
	provider := NewProvider(factory, storageLogger)

	db, err := provider.Open(params.Props)
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		Factory:  factory,
		Provider: provider,
		Database: db,
	}, nil
}
